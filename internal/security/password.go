package security

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects passwords longer than 72 bytes; cap inputs there so hashing
// and verification agree on what was actually hashed.
const maxPasswordBytes = 72

// HashPassword hashes a password with bcrypt and a per-call random salt.
// Two calls with the same password yield different hash strings.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(truncate(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A malformed or empty hash is a non-match, never an error. Hashes written by
// an earlier release were stored with stray byte-literal markers around them
// (`b'...'`); those wrappers are stripped before comparison so existing
// accounts keep working.
func VerifyPassword(password, hash string) bool {
	hash = stripLegacyWrappers(hash)
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(truncate(password)))
	return err == nil
}

// stripLegacyWrappers removes the `b'...'` / quote artifacts left by the old
// storage path. Compatibility shim only.
func stripLegacyWrappers(hash string) string {
	hash = strings.TrimSpace(hash)
	if strings.HasPrefix(hash, "b'") && strings.HasSuffix(hash, "'") {
		hash = hash[2 : len(hash)-1]
	}
	hash = strings.Trim(hash, `'"`)
	return hash
}

func truncate(password string) string {
	if len(password) > maxPasswordBytes {
		return password[:maxPasswordBytes]
	}
	return password
}
