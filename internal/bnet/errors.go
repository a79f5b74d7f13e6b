package bnet

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// ErrTokenExchange marks a failed credentials exchange. It is never skippable.
var ErrTokenExchange = errors.New(ErrMsgTokenExchange)

// UpstreamError is any non-2xx response other than 404
type UpstreamError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s %d: %s", e.Endpoint, ErrMsgUpstreamStatus, e.StatusCode, e.Body)
}

// IsClientError reports a 4xx status
func (e *UpstreamError) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// Skippable reports whether err only concerns the single entity being resolved.
// Callers iterating many ids log and move on; anything else aborts the step.
// Index fetches never consult it, so a malformed index stays fatal.
func Skippable(err error) bool {
	if err == nil || errors.Is(err, ErrTokenExchange) {
		return false
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnresolvedMetadata) ||
		errors.Is(err, domain.ErrMalformedResponse) {
		return true
	}
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.IsClientError() && upErr.StatusCode != http.StatusUnauthorized &&
			upErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

func snippet(body []byte) string {
	if len(body) > bodySnippetLimit {
		return string(body[:bodySnippetLimit])
	}
	return string(body)
}
