package thingsboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// APIError non-2xx answer from the platform. Error() is the raw body.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Body) != "" {
		return e.Body
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return "request failed"
}

// Message returns ThingsBoard's "message" field when the body is its JSON
// error shape, otherwise the raw body.
func (e *APIError) Message() string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil && body.Message != "" {
		return body.Message
	}
	return e.Error()
}

// IsPermissionDenied reports whether the error text mentions "permission".
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "permission")
}

// IsUnauthorized reports a 401 from the platform, i.e. an expired or revoked token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports a 404 from the platform.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
