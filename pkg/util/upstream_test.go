package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr struct {
	status int
	msg    string
}

func (e *statusErr) Error() string       { return fmt.Sprintf("backend %d", e.status) }
func (e *statusErr) StatusCode() int     { return e.status }
func (e *statusErr) UserMessage() string { return e.msg }

func TestFromUpstream(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"unauthorized", &statusErr{status: 401}, http.StatusUnauthorized, CodeUpstreamUnauthorized, "Authentication required"},
		{"conflict uses caller message", &statusErr{status: 409, msg: "duplicate"}, http.StatusConflict, CodeUpstreamConflict, "Name taken"},
		{"backend message verbatim", &statusErr{status: 400, msg: "Closing date is invalid"}, http.StatusBadRequest, CodeUpstreamFailure, "Closing date is invalid"},
		{"5xx message becomes bad gateway", &statusErr{status: 503, msg: "down"}, http.StatusBadGateway, CodeUpstreamFailure, "down"},
		{"no message falls back", &statusErr{status: 500}, http.StatusBadGateway, CodeUpstreamFailure, "fallback"},
		{"network error falls back", errors.New("dial tcp: refused"), http.StatusBadGateway, CodeUpstreamFailure, "fallback"},
		{"wrapped status", fmt.Errorf("op: %w", &statusErr{status: 401}), http.StatusUnauthorized, CodeUpstreamUnauthorized, "Authentication required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(FromUpstream(tt.err, "Name taken", "fallback"))
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantMsg, de.Message)
		})
	}
}

func TestFromUpstream_PassesDomainErrorsThrough(t *testing.T) {
	original := NewForbidden("nope")
	assert.Same(t, original, FromUpstream(original, "", "fallback"))
	assert.Nil(t, FromUpstream(nil, "", "fallback"))
}

func TestToDomainError_WrapsUnknownErrors(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}
