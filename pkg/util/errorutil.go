package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced by the front end.
const (
	CodeMissingToken         = "MISSING_TOKEN"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeConfiguration        = "CONFIGURATION_ERROR"
	CodeAccessDenied         = "ACCESS_DENIED"
	CodeFeatureDisabled      = "FEATURE_DISABLED"
	CodeUpstreamUnauthorized = "UPSTREAM_UNAUTHORIZED"
	CodeUpstreamConflict     = "UPSTREAM_CONFLICT"
	CodeUpstreamFailure      = "UPSTREAM_FAILURE"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Title      string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, title, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Title: title, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, "Invalid Request", message, http.StatusBadRequest, details)
}

func NewNotFound(message string) error {
	return NewDomainError(CodeNotFound, "Not Found", message, http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUpstreamUnauthorized, "Authentication Required", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeAccessDenied, "Access Denied", message, http.StatusForbidden, nil)
}

func NewFeatureDisabled(message string) error {
	return NewDomainError(CodeFeatureDisabled, "Feature Not Available", message, http.StatusNotFound, nil)
}

func NewConfigurationError(err error) error {
	return &DomainError{
		Code:       CodeConfiguration,
		Title:      "Error",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewConflict(message string) error {
	return NewDomainError(CodeUpstreamConflict, "Error", message, http.StatusConflict, nil)
}

func NewUpstreamFailure(message string, err error) error {
	return &DomainError{
		Code:       CodeUpstreamFailure,
		Title:      "Error",
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewRateLimited() error {
	return NewDomainError(CodeRateLimited, "Too Many Requests", "Too many attempts. Please wait and try again.", http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Title:      "Error",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeInternal,
		Title:      "Error",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// WithTitle returns a copy of the error carrying a different page title.
func (e *DomainError) WithTitle(title string) *DomainError {
	clone := *e
	clone.Title = title
	return &clone
}
