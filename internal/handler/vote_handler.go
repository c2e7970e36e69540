package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type VoteRequest struct {
	Type string `json:"type" validate:"required,oneof=up down"`
}

func (h *Handlers) CastVote(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Тип голоса должен быть up или down", http.StatusBadRequest)
		return
	}

	flipped, err := h.VoteService.CastVote(r.Context(), userID, listingID, req.Type)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	message := "Голос принят"
	if flipped {
		message = "Голос изменён"
	}

	WriteSuccess(w, map[string]string{"success": message}, http.StatusOK)
}
