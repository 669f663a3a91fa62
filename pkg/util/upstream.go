package util

import (
	"errors"
	"net/http"
)

// UpstreamStatus is implemented by errors returned from the backend client.
type UpstreamStatus interface {
	error
	StatusCode() int
	UserMessage() string
}

// FromUpstream translates a backend failure into one of the user-facing outcomes.
// conflictMessage is used for 409 responses; fallback for anything without a
// backend-supplied message.
func FromUpstream(err error, conflictMessage, fallback string) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}

	var up UpstreamStatus
	if !errors.As(err, &up) {
		return NewUpstreamFailure(fallback, err)
	}

	switch up.StatusCode() {
	case http.StatusUnauthorized:
		return &DomainError{
			Code:       CodeUpstreamUnauthorized,
			Title:      "Authentication Required",
			Message:    "Authentication required",
			HTTPStatus: http.StatusUnauthorized,
			Err:        err,
		}
	case http.StatusConflict:
		msg := conflictMessage
		if msg == "" {
			msg = up.UserMessage()
		}
		if msg == "" {
			msg = fallback
		}
		return &DomainError{
			Code:       CodeUpstreamConflict,
			Title:      "Error",
			Message:    msg,
			HTTPStatus: http.StatusConflict,
			Err:        err,
		}
	}

	if msg := up.UserMessage(); msg != "" {
		status := up.StatusCode()
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		return &DomainError{
			Code:       CodeUpstreamFailure,
			Title:      "Error",
			Message:    msg,
			HTTPStatus: status,
			Err:        err,
		}
	}
	return NewUpstreamFailure(fallback, err)
}
