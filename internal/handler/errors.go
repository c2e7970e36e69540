package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"freshmarket/internal/repository"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteDomainError maps domain errors to HTTP statuses.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "Не найдено", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateVote):
		WriteError(w, "Вы уже голосовали за это объявление", http.StatusBadRequest)
	case errors.Is(err, repository.ErrForbidden):
		WriteError(w, "Вы не владелец этого объявления", http.StatusForbidden)
	case errors.Is(err, repository.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
