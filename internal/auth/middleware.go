package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/marketpulse/market-pulse-be/internal/models"
	"github.com/marketpulse/market-pulse-be/internal/store"
)

// UserFinder is the slice of the account store the authenticator needs.
type UserFinder interface {
	FindByEmail(email string) (models.User, error)
}

type contextKey string

// UserKey is the context key under which the authenticated user is stored.
const UserKey = contextKey("authUser")

// UserFromContext returns the account resolved by Middleware, if any.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserKey).(models.User)
	return user, ok
}

// Middleware gates protected routes. It requires an Authorization header with
// the Bearer scheme, verifies the token as an access token, and resolves the
// subject to an account. The exact token defect (bad signature, expired,
// wrong kind) is never revealed to the caller. No revocation list exists:
// an unexpired access token stays valid even if the account changes later.
func Middleware(codec *Codec, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, tokenStr, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
				writeAuthError(w, http.StatusUnauthorized, "not_authenticated", "User not authenticated.")
				return
			}

			subject, err := codec.Verify(tokenStr, TokenAccess, time.Now())
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid_token", "Invalid Token")
				return
			}

			user, err := users.FindByEmail(subject)
			if err != nil {
				if err == store.ErrNotFound {
					writeAuthError(w, http.StatusNotFound, "user_not_found", "User not found.")
					return
				}
				writeAuthError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, reason, message string) {
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": reason, "message": message})
}
