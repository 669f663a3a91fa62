package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Error describes a failed backend call. Status is 0 when no response arrived.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("upstream %s: status %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("upstream %s: status %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the backend HTTP status, or 0 for transport failures.
func (e *Error) StatusCode() int {
	return e.Status
}

// UserMessage returns the backend's own "error" string, if it sent one.
func (e *Error) UserMessage() string {
	return e.Message
}

func hasStatus(err error, status int) bool {
	var upErr *Error
	return errors.As(err, &upErr) && upErr.Status == status
}

// IsUnauthorized reports a backend 401.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsConflict reports a backend 409.
func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

// IsNotFound reports a backend 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }
