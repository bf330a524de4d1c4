// Package api is a thin client for the portfolio backend REST API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents an error response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Code       string // e.g., "not_found", "unauthorized"
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// IsUnauthorized returns true if the error is an authorization error.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// codeForStatus names the HTTP status classes the backend returns.
func codeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "bad_request"
	case status == http.StatusUnauthorized:
		return "unauthorized"
	case status == http.StatusForbidden:
		return "forbidden"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusUnprocessableEntity:
		return "validation_error"
	case status >= 500:
		return "server_error"
	default:
		return ""
	}
}

// newAPIError builds an APIError from a response body. FastAPI reports
// errors as {"detail": "..."} or, for validation errors, {"detail": [...]}.
func newAPIError(status int, body []byte) *APIError {
	message := strings.TrimSpace(string(body))

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			message = detail
		} else {
			message = string(payload.Detail)
		}
	}

	if message == "" {
		message = http.StatusText(status)
	}

	return &APIError{
		StatusCode: status,
		Message:    message,
		Code:       codeForStatus(status),
	}
}
