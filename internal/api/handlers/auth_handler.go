package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/marketpulse/market-pulse-be/internal/auth"
	"github.com/marketpulse/market-pulse-be/internal/models"
	"github.com/marketpulse/market-pulse-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for account identity.
type AuthHandler struct {
	service services.IdentityServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.IdentityServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailPayload carries a bare email, used by resend and forget-password.
type EmailPayload struct {
	Email string `json:"email"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "username, email and password are required")
		return
	}

	user, err := h.service.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// VerifyEmail handles the verification link from the email.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "invalid_token", "Invalid Token")
		return
	}

	message, err := h.service.VerifyEmail(token)
	if err != nil {
		log.Warn().Err(err).Msg("Email verification failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// ResendVerification issues a new verification email for an account.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var payload EmailPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	message, err := h.service.ResendVerification(payload.Email)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to resend verification")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	tokens, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// GetMe returns the authenticated user's profile.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateMe applies a partial update to the authenticated user's profile.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from context")
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}

	var payload models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(user, payload)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to update user")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// ForgetPassword sends a password-reset code to a registered email.
func (h *AuthHandler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var payload EmailPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	message, err := h.service.RequestPasswordReset(payload.Email)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed password reset request")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}
