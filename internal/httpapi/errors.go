// Package httpapi содержит HTTP-слой витрины: маршруты, сессии и
// преобразование доменных ошибок в JSON-ответы.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// jsonError — JSON-представление ошибки в ответе API.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError пишет JSON-ошибку с заданным статусом.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// writeDomainError подбирает HTTP-статус по доменной ошибке.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		WriteJSONError(w, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, domain.ErrNotAuthenticated):
		WriteJSONError(w, http.StatusUnauthorized, "not authenticated", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, "invalid credentials", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		WriteJSONError(w, http.StatusUnprocessableEntity, "empty cart", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		WriteJSONError(w, http.StatusConflict, "insufficient stock", err.Error())
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		WriteJSONError(w, http.StatusConflict, "idempotency key reused with different request", err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// writeJSON пишет успешный JSON-ответ.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
