package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	base := New(CodeNoRecords, "no rows")
	wrapped := fmt.Errorf("building summary: %w", base)

	assert.Equal(t, CodeNoRecords, GetCode(base))
	assert.Equal(t, CodeNoRecords, GetCode(wrapped))
	assert.Equal(t, CodeInternal, GetCode(errors.New("boom")))
	assert.Equal(t, CodeInternal, GetCode(nil))
	assert.True(t, IsCode(wrapped, CodeNoRecords))
}

func TestErrorIsByCode(t *testing.T) {
	err := Wrap(CodeUpstreamFetch, "fetching pointer", errors.New("connection refused"))
	assert.True(t, errors.Is(err, New(CodeUpstreamFetch, "")))
	assert.False(t, errors.Is(err, New(CodeNoRecords, "")))
	assert.Equal(t, "fetching pointer: connection refused", err.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("status 503")
	err := Wrap(CodeUpstreamFetch, "fetching pointer", cause)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidAddress, http.StatusBadRequest},
		{CodeNoRecords, http.StatusNotFound},
		{CodeUpstreamFetch, http.StatusBadGateway},
		{CodeSchemaMismatch, http.StatusBadGateway},
		{CodeUnknownEngine, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, CodeInvalidAddress.UserMessage(), "Not a valid address")
	assert.Contains(t, CodeNoRecords.UserMessage(), "no records found")
	assert.NotEmpty(t, Code("SOMETHING_ELSE").UserMessage())
}
