// Package auth issues and verifies the stateless session tokens that gate
// every mood endpoint. Tokens are HS256 JWTs carrying the user id as the
// subject; nothing is persisted server-side, so verification needs only the
// signing secret.
package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"moodlog/internal/apperr"
)

// Issue signs a token for userID expiring after ttl.
func Issue(secret []byte, userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify parses and validates tokenStr and returns the user id it was issued
// for. Missing, malformed, expired, or foreign-keyed tokens all fail with the
// same auth error.
func Verify(secret []byte, tokenStr string) (int, error) {
	if tokenStr == "" {
		return 0, apperr.Auth("missing token")
	}
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.Auth("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.Auth("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, apperr.Auth("invalid subject")
	}
	return int(sub), nil
}
