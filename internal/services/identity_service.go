package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketpulse/market-pulse-be/internal/auth"
	"github.com/marketpulse/market-pulse-be/internal/mail"
	"github.com/marketpulse/market-pulse-be/internal/models"
	"github.com/marketpulse/market-pulse-be/internal/security"
	"github.com/marketpulse/market-pulse-be/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidPassword is returned when credentials do not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrNotVerified is returned when a login hits an account that has not
	// completed email verification.
	ErrNotVerified = errors.New("unverified email")
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MailSubmitter is the slice of the mail dispatcher the service needs.
// Submission must not block; delivery is best-effort.
type MailSubmitter interface {
	Enqueue(msg mail.Message)
}

// IdentityServiceProvider defines the interface for account identity services.
type IdentityServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	VerifyEmail(token string) (string, error)
	ResendVerification(email string) (string, error)
	Login(email, password string) (TokenPair, error)
	UpdateProfile(user models.User, update models.UserUpdate) (models.User, error)
	RequestPasswordReset(email string) (string, error)
}

// IdentityService orchestrates registration, verification, login, profile
// updates and password-reset requests.
type IdentityService struct {
	users       store.UserStoreProvider
	codec       *auth.Codec
	mailer      MailSubmitter
	frontendURL string
	devMode     bool
	now         func() time.Time
}

// NewIdentityService creates a new IdentityService. devMode enables logging
// of live verification/reset links; it must be false in production.
func NewIdentityService(users store.UserStoreProvider, codec *auth.Codec, mailer MailSubmitter, frontendURL string, devMode bool) *IdentityService {
	return &IdentityService{
		users:       users,
		codec:       codec,
		mailer:      mailer,
		frontendURL: frontendURL,
		devMode:     devMode,
		now:         time.Now,
	}
}

// NormalizeEmail lower-cases and trims an email address. The normalized form
// is the unique account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and dispatches a verification email.
// The store's unique constraint is the authoritative duplicate check, so two
// concurrent registrations with the same email cannot both succeed.
func (s *IdentityService) Register(username, email, password string) (models.User, error) {
	emailNorm := NormalizeEmail(email)

	hash, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Insert(models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        emailNorm,
		PasswordHash: hash,
		IsVerified:   false,
	})
	if err != nil {
		return models.User{}, err
	}

	token, err := s.codec.Issue(emailNorm, auth.TokenVerification, s.now())
	if err != nil {
		return models.User{}, fmt.Errorf("failed to issue verification token: %w", err)
	}
	s.sendVerificationMail(user, token, false)

	return user, nil
}

// VerifyEmail flips an account to verified. Verifying an already-verified
// account is a no-op success so a re-clicked link never errors.
func (s *IdentityService) VerifyEmail(token string) (string, error) {
	email, err := s.codec.Verify(token, auth.TokenVerification, s.now())
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user.IsVerified {
		return "This email has already been verified", nil
	}

	user.IsVerified = true
	if _, err := s.users.Update(user); err != nil {
		return "", err
	}
	return "Your account has been verified successfully", nil
}

// ResendVerification issues a fresh verification token for an unverified
// account. Verified accounts get a success message and no email.
func (s *IdentityService) ResendVerification(email string) (string, error) {
	user, err := s.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if user.IsVerified {
		return "This account has already been verified.", nil
	}

	token, err := s.codec.Issue(user.Email, auth.TokenVerification, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to issue verification token: %w", err)
	}
	s.sendVerificationMail(user, token, true)

	return "Verification email has been sent. Check your mail box.", nil
}

// Login checks credentials and returns an access/refresh token pair.
// Check order is fixed: existence, then password, then verification state.
// An unverified account with the right password still learns it must verify.
func (s *IdentityService) Login(email, password string) (TokenPair, error) {
	user, err := s.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return TokenPair{}, err
	}
	if !security.VerifyPassword(password, user.PasswordHash) {
		return TokenPair{}, ErrInvalidPassword
	}
	if !user.IsVerified {
		return TokenPair{}, ErrNotVerified
	}

	now := s.now()
	access, err := s.codec.Issue(user.Email, auth.TokenAccess, now)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.codec.Issue(user.Email, auth.TokenRefresh, now)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// UpdateProfile applies a partial update to an authenticated user's profile.
// Only fields present in the update are touched; a new password goes through
// the hasher before it is stored.
func (s *IdentityService) UpdateProfile(user models.User, update models.UserUpdate) (models.User, error) {
	// Re-read so a stale in-context copy cannot clobber newer fields.
	current, err := s.users.FindByEmail(user.Email)
	if err != nil {
		return models.User{}, err
	}

	if update.Username != nil {
		current.Username = *update.Username
	}
	if update.Password != nil {
		hash, err := security.HashPassword(*update.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		current.PasswordHash = hash
	}

	return s.users.Update(current)
}

// RequestPasswordReset generates a one-time reset code and emails it. The
// code is not persisted and no endpoint consumes it yet; completing the reset
// flow needs a bound, expiring code store first.
func (s *IdentityService) RequestPasswordReset(email string) (string, error) {
	user, err := s.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return "", err
	}

	code, err := security.GenerateOTP()
	if err != nil {
		return "", err
	}

	resetLink := fmt.Sprintf("%s/forget-password?token=%s", s.frontendURL, code)
	if s.devMode {
		log.Info().Str("link", resetLink).Msg("DEV MODE password reset link")
	}

	s.mailer.Enqueue(mail.Message{
		To:      user.Email,
		Subject: "The Market Pulse - Password Reset",
		HTML: fmt.Sprintf(`
	<h1>Welcome %s to The Market Pulse!</h1>
	<p>Click on the link below to reset your password:</p>
	<a href="%s">Reset Password</a>
	<p>This link will be expired in 24 hours.</p>
	`, user.Username, resetLink),
	})

	return "Check your email for password reset link", nil
}

func (s *IdentityService) sendVerificationMail(user models.User, token string, resend bool) {
	verifyLink := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token)
	if s.devMode {
		log.Info().Str("link", verifyLink).Msg("DEV MODE verification link")
	}

	subject := "The Market Pulse - Account Verification"
	body := fmt.Sprintf(`
	<h1>Welcome %s to The Market Pulse!</h1>
	<p>Please click on the link below to verify your account:</p>
	<a href="%s">Verify Here</a>
	<p>This link will be expired in 24 hours.</p>
	`, user.Username, verifyLink)
	if resend {
		subject = "The Market Pulse - Account Verification Resend"
		body = fmt.Sprintf(`
	<h1>Hello %s,</h1>
	<p>You requested a new verification link for The Market Pulse.</p>
	<p>Click on the link below to re-verify your account:</p>
	<a href="%s">Verify now</a>
	<p>This link will be expired in 24 hours.</p>
	`, user.Username, verifyLink)
	}

	s.mailer.Enqueue(mail.Message{To: user.Email, Subject: subject, HTML: body})
}
