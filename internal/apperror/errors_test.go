package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("store not found")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("store suspended")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized("wrong password")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("password too short")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal("failed", errors.New("db down"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	err := fmt.Errorf("loading storefront: %w", NotFound("store not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "store not found", Message(err))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal("could not load catalog", cause)

	assert.Equal(t, "could not load catalog", Message(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "internal server error", Message(cause))
}
