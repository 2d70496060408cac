package security

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPFormat(t *testing.T) {
	seen := make(map[string]bool)
	min, max := 999999, 0

	for i := 0; i < 10000; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6, "code must always be 6 digits, got %q", code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err, "code must be numeric, got %q", code)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 1000000)

		seen[code] = true
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	// 10k uniform draws over a million values should spread widely.
	assert.Greater(t, len(seen), 9000, "codes should rarely collide")
	assert.Less(t, min, 100000, "low range should be hit, including zero-padded codes")
	assert.Greater(t, max, 900000, "high range should be hit")
}
