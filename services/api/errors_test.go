package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorString(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Post not found", Code: "not_found"}
	assert.Equal(t, "Post not found (not_found, HTTP 404)", err.Error())

	err = &APIError{StatusCode: 418, Message: "teapot"}
	assert.Equal(t, "teapot (HTTP 418)", err.Error())
}

func TestErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("load post: %w", newAPIError(http.StatusNotFound, []byte(`{"detail":"Post not found"}`)))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsUnauthorized(wrapped))

	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		code    string
	}{
		{name: "String detail", status: http.StatusNotFound, body: `{"detail":"Post not found"}`, message: "Post not found", code: "not_found"},
		{name: "Validation detail", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["body","title"]}]}`, message: `[{"loc":["body","title"]}]`, code: "validation_error"},
		{name: "Plain text", status: http.StatusBadGateway, body: "upstream down", message: "upstream down", code: "server_error"},
		{name: "Empty body", status: http.StatusUnauthorized, body: "", message: "Unauthorized", code: "unauthorized"},
		{name: "Unknown status", status: http.StatusConflict, body: "", message: "Conflict", code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}
