package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	err := New(ValidationError, "bad input", "field qty")
	assert.Equal(t, "VALIDATION_ERROR: bad input (field qty)", err.Error())

	noDetail := New(ServerError, "boom", "")
	assert.Equal(t, "SERVER_ERROR: boom", noDetail.Error())
}

func TestWrapPreservesUnderlying(t *testing.T) {
	raw := fmt.Errorf("connection refused")
	err := Wrap(raw, UnreachableError, "fetch failed")

	assert.Equal(t, raw, err.Unwrap())
	assert.Contains(t, err.Detail, "connection refused")
	assert.Equal(t, http.StatusBadGateway, err.GetHTTPStatus())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ServerError, "ignored"))
}

func TestUnreachablePreservesTransportMessage(t *testing.T) {
	raw := fmt.Errorf("dial tcp: i/o timeout")
	err := Unreachable("https://l1.prodbx.com/go/view/?x", raw)

	assert.Equal(t, UnreachableError, err.Type)
	assert.Equal(t, "dial tcp: i/o timeout", err.Detail)
	assert.Contains(t, err.Message, "l1.prodbx.com")
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		errType ErrorType
		status  int
	}{
		{ValidationError, http.StatusBadRequest},
		{MalformedInputError, http.StatusBadRequest},
		{NotFoundError, http.StatusNotFound},
		{UnreachableError, http.StatusBadGateway},
		{ExtractionFailure, http.StatusUnprocessableEntity},
		{ServerError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, New(tt.errType, "m", "").GetHTTPStatus(), string(tt.errType))
	}
}
