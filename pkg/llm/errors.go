package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyCompletion marks a successful provider call that produced no usable
// text content (no choices, or empty content and reasoning).
var ErrEmptyCompletion = errors.New("empty completion from provider")

// APIError is a non-2xx response from a completion provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider api error (status %d): %s", e.StatusCode, e.Body)
}

// IsAuthError reports whether err is a credential rejection from the provider.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRateLimitError reports whether err is a rate-limit rejection.
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
