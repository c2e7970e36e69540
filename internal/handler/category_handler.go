package handlers

import (
	"net/http"
)

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryRepo.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, categories, http.StatusOK)
}
