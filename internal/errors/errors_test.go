package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{UnauthorizedError("no session"), http.StatusUnauthorized},
		{NotFoundError("missing"), http.StatusNotFound},
		{InternalError("boom", errors.New("cause")), http.StatusInternalServerError},
		{&Error{Type: "bogus"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus())
	}
}

func TestError_MessageFormatting(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError("query failed", cause)
	assert.Equal(t, "internal: query failed: connection refused", err.Error())

	plain := ValidationError("time must be an integer")
	assert.Equal(t, "validation: time must be an integer", plain.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := InternalError("wrapped", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestAsStructuredError_PassThrough(t *testing.T) {
	orig := NotFoundError("user bob does not exist")
	got := AsStructuredError(orig)
	assert.Same(t, orig, got)
}

func TestAsStructuredError_WrapsPlainError(t *testing.T) {
	got := AsStructuredError(errors.New("surprise"))
	require.NotNil(t, got)
	assert.Equal(t, TypeInternal, got.Type)
}

func TestAsStructuredError_Nil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}

func TestWithContext(t *testing.T) {
	err := ValidationError("bad").WithContext("field", "time")
	assert.Equal(t, "time", err.Context["field"])

	resp := err.ToResponse()
	assert.Equal(t, "bad", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "time", resp.Context["field"])
}
