package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiErrorJSON(t *testing.T) {
	for _, test := range []struct {
		err  ApiError
		code int
		json string
	}{
		{EmptyRequest, http.StatusBadRequest, `{"error":4,"message":"Request contains nothing to execute"}`},
		{NewProgramTooLargeError(10), http.StatusRequestEntityTooLarge, `{"error":2,"message":"Request body is larger than 10 bytes"}`},
		{NewInvalidCanvasSizeError(-1, 5, 100), http.StatusBadRequest, `{"error":3,"message":"Canvas size -1x5 is invalid: sides must be between 0 and 100"}`},
		{NewUnknownError(errors.New("secret")), http.StatusInternalServerError, `{"error":0,"message":"Error is unknown"}`},
	} {
		b, err := json.Marshal(test.err)
		require.NoError(t, err)
		assert.JSONEq(t, test.json, string(b))
		assert.Equal(t, test.code, test.err.GetHttpCode())
	}
}

func TestUnknownErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	assert.ErrorIs(t, NewUnknownError(inner), inner)
}

func TestInvalidJSONError(t *testing.T) {
	err := NewInvalidJSONError(errors.New("unexpected EOF"))
	assert.Equal(t, InvalidJSONErrorID, err.GetID())
	assert.Equal(t, "Failed to parse request body: unexpected EOF", err.Error())
}
