package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marketpulse/market-pulse-be/internal/auth"
	"github.com/marketpulse/market-pulse-be/internal/services"
	"github.com/marketpulse/market-pulse-be/internal/store"
	"github.com/rs/zerolog/log"
)

// errorBody is the stable error shape crossing the boundary: a machine
// readable reason plus a human message, never internal detail.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, reason, message string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	respondJSON(w, status, errorBody{Error: reason, Message: message})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
// All token defects collapse to one 401 so a caller cannot tell a forged
// token from an expired or wrong-kind one.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		respondError(w, http.StatusConflict, "email_exists", "User email already exist.")
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "user_not_found", "User not found.")
	case errors.Is(err, services.ErrInvalidPassword):
		respondError(w, http.StatusBadRequest, "invalid_password", "Invalid Password")
	case errors.Is(err, services.ErrNotVerified):
		respondError(w, http.StatusForbidden, "not_verified", "Unverified Email. Please check your email again.")
	case errors.Is(err, auth.ErrNoCredentials):
		respondError(w, http.StatusUnauthorized, "not_authenticated", "User not authenticated.")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrKindMismatch):
		respondError(w, http.StatusUnauthorized, "invalid_token", "Invalid Token")
	default:
		log.Error().Err(err).Msg("Unhandled domain error")
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
