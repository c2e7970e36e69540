package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type CommentRequest struct {
	Body string `json:"body" validate:"required,max=255"`
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Комментарий обязателен и не длиннее 255 символов", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.AddComment(r.Context(), listingID, userID, req.Body)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}
