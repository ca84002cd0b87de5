package corpora

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors returned by the Corpora client.
var (
	// ErrInvalidConfig indicates invalid client configuration.
	ErrInvalidConfig = errors.New("invalid corpora configuration")

	// ErrNoRefreshToken is returned by Refresh when no refresh token is set.
	ErrNoRefreshToken = errors.New("no refresh token set")

	// ErrDirectoryPart is returned when a multipart file part points at a
	// directory instead of a regular file.
	ErrDirectoryPart = errors.New("multipart file part is a directory")
)

// APIError represents an error response from the Corpora API. Its message
// always has the form "Status <code>: <message>"; callers pattern-match on
// that prefix to distinguish error classes, so the format must not change.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("Status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// errorEnvelope mirrors the failure body the server sends.
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

// newAPIError normalizes a failed response into an *APIError. The server
// envelope is {"detail": <string | {"message": ...}>}; anything else is
// stringified wholesale.
func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    extractMessage(status, body),
	}
}

func extractMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return http.StatusText(status)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		// Not the structured envelope, use the body as-is.
		return trimmed
	}

	// detail may be an object carrying a message, or a bare scalar.
	var detailObj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Detail, &detailObj); err == nil && detailObj.Message != "" {
		return detailObj.Message
	}

	var scalar any
	if err := json.Unmarshal(envelope.Detail, &scalar); err == nil {
		switch v := scalar.(type) {
		case string:
			return v
		case map[string]any:
			// Object without a message sub-field.
			return http.StatusText(status)
		default:
			return fmt.Sprintf("%v", v)
		}
	}

	return http.StatusText(status)
}
