package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/marketpulse/market-pulse-be/internal/config"
)

// TokenKind distinguishes the three credentials the service issues.
type TokenKind string

const (
	TokenAccess       TokenKind = "access"
	TokenRefresh      TokenKind = "refresh"
	TokenVerification TokenKind = "verification"
)

// Token failures are kept distinct internally for diagnostics and tests.
// Handlers collapse all of them into a single 401 so callers cannot probe
// whether a token is malformed, expired, or the wrong kind.
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrKindMismatch  = errors.New("token kind mismatch")
	ErrNoCredentials = errors.New("user not authenticated")
)

// Claims defines the JWT claims structure. Subject is the account's
// normalized email.
type Claims struct {
	Kind TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed tokens. It is stateless and safe for
// concurrent use; rotating the signing secret invalidates every outstanding
// token at once.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    map[TokenKind]time.Duration
}

// NewCodec builds a Codec from the loaded configuration. Only HMAC signing
// methods are accepted: the same symmetric secret signs and verifies.
func NewCodec(cfg *config.Config) (*Codec, error) {
	method := jwt.GetSigningMethod(cfg.SigningAlgorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.SigningAlgorithm)
	}
	return &Codec{
		secret: []byte(cfg.JWTSecret),
		method: method,
		ttl: map[TokenKind]time.Duration{
			TokenAccess:       cfg.AccessTokenTTL,
			TokenRefresh:      cfg.RefreshTokenTTL,
			TokenVerification: cfg.VerifyTokenTTL,
		},
	}, nil
}

// Lifetime returns the configured lifetime for a token kind.
func (c *Codec) Lifetime(kind TokenKind) time.Duration {
	return c.ttl[kind]
}

// Issue creates a signed token of the given kind for a subject, expiring
// after the kind's configured lifetime.
func (c *Codec) Issue(subject string, kind TokenKind, now time.Time) (string, error) {
	claims := &Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl[kind])),
		},
	}
	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Verify parses a token string and returns its subject. It fails with
// ErrTokenExpired past the expiry, ErrKindMismatch when the embedded kind
// differs from expected, and ErrInvalidToken for any other defect
// (bad signature, missing fields, wrong algorithm).
func (c *Codec) Verify(tokenStr string, expected TokenKind, now time.Time) (string, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" || claims.Kind == "" {
		return "", ErrInvalidToken
	}
	if claims.Kind != expected {
		return "", ErrKindMismatch
	}
	return claims.Subject, nil
}
