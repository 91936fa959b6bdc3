package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad input")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Auth("no token")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("gone")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Store(errors.New("db down"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain error")))
}

func TestStoreHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store(cause)

	assert.Equal(t, "server error", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("create entry: %w", Auth("invalid token"))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(wrapped))
	assert.True(t, IsAuth(wrapped))
}
