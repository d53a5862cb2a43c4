package backend

import (
	"fmt"
	"net/http"

	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"
)

// APIError represents a non-success response from the backend. The status
// code carries the error class; Message is the backend's human readable
// explanation, surfaced to the user as a transient notification.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the shared error taxonomy so callers can
// use errors.Is without inspecting status codes themselves.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return syserrors.ErrUnauthorized
	case http.StatusForbidden:
		return syserrors.ErrForbidden
	case http.StatusNotFound:
		return syserrors.ErrNotFound
	case http.StatusLocked:
		return syserrors.ErrAccountLocked
	case http.StatusTooManyRequests:
		return syserrors.ErrRateLimited
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return syserrors.ErrValidation
	default:
		return syserrors.ErrInternal
	}
}
