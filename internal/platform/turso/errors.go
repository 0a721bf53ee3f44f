package turso

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a platform API response with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("turso api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("turso api: status %d", e.StatusCode)
}

// IsUnauthorized checks if an error is a definitive 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsNotFound checks if an error is a definitive 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsDefinitive reports whether an error carries a status that conclusively
// identifies the credential as invalid (401 or 404). Anything else, network
// failures included, must be treated as transient.
func IsDefinitive(err error) bool {
	return IsUnauthorized(err) || IsNotFound(err)
}

func hasStatus(err error, status int) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}
