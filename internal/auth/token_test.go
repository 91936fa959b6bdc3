package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog/internal/apperr"
)

var secret = []byte("test-secret")

func TestIssueVerifyRoundTrip(t *testing.T) {
	token, err := Issue(secret, 42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := Verify(secret, token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	valid, err := Issue(secret, 7, time.Hour)
	require.NoError(t, err)

	expired, err := Issue(secret, 7, -time.Minute)
	require.NoError(t, err)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubStr, err := noSub.SignedString(secret)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	unsignedStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.jwt"},
		{"expired token", expired},
		{"wrong secret", mustSign(t, []byte("other-secret"))},
		{"missing subject", noSubStr},
		{"unsigned token", unsignedStr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(secret, tt.token)
			require.Error(t, err)
			assert.True(t, apperr.IsAuth(err))
		})
	}

	// Sanity: the valid token still verifies after all the failures above.
	userID, err := Verify(secret, valid)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func mustSign(t *testing.T, key []byte) string {
	t.Helper()
	token, err := Issue(key, 7, time.Hour)
	require.NoError(t, err)
	return token
}
