package auth

import (
	"testing"
	"time"

	"github.com/marketpulse/market-pulse-be/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		JWTSecret:        secret,
		SigningAlgorithm: "HS256",
		AccessTokenTTL:   30 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
		VerifyTokenTTL:   24 * time.Hour,
	}
}

func TestNewCodecRejectsNonHMAC(t *testing.T) {
	cfg := testConfig("secret")
	cfg.SigningAlgorithm = "RS256"
	_, err := NewCodec(cfg)
	require.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	codec, err := NewCodec(testConfig("test-secret"))
	require.NoError(t, err)

	now := time.Now()
	for _, kind := range []TokenKind{TokenAccess, TokenRefresh, TokenVerification} {
		token, err := codec.Issue("alice@example.com", kind, now)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		subject, err := codec.Verify(token, kind, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", subject)
	}
}

func TestVerifyExpired(t *testing.T) {
	codec, err := NewCodec(testConfig("test-secret"))
	require.NoError(t, err)

	now := time.Now()
	token, err := codec.Issue("alice@example.com", TokenAccess, now)
	require.NoError(t, err)

	// Just inside the lifetime still verifies.
	_, err = codec.Verify(token, TokenAccess, now.Add(29*time.Minute))
	require.NoError(t, err)

	_, err = codec.Verify(token, TokenAccess, now.Add(31*time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyKindMismatch(t *testing.T) {
	codec, err := NewCodec(testConfig("test-secret"))
	require.NoError(t, err)

	now := time.Now()
	verifyToken, err := codec.Issue("alice@example.com", TokenVerification, now)
	require.NoError(t, err)
	accessToken, err := codec.Issue("alice@example.com", TokenAccess, now)
	require.NoError(t, err)

	_, err = codec.Verify(verifyToken, TokenAccess, now)
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = codec.Verify(accessToken, TokenVerification, now)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestVerifyTampered(t *testing.T) {
	codec, err := NewCodec(testConfig("test-secret"))
	require.NoError(t, err)

	now := time.Now()
	token, err := codec.Issue("alice@example.com", TokenAccess, now)
	require.NoError(t, err)

	_, err = codec.Verify(token+"x", TokenAccess, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Verify("not-a-token", TokenAccess, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	codec, err := NewCodec(testConfig("secret-one"))
	require.NoError(t, err)
	other, err := NewCodec(testConfig("secret-two"))
	require.NoError(t, err)

	now := time.Now()
	token, err := codec.Issue("alice@example.com", TokenAccess, now)
	require.NoError(t, err)

	// Rotating the signing secret invalidates outstanding tokens.
	_, err = other.Verify(token, TokenAccess, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
