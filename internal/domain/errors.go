package domain

import (
	"errors"
	"fmt"
)

// UpstreamError is a failed fetch against the rate API. Status is the
// HTTP status code for non-200 responses and zero when the request
// never produced a response (DNS failure, refused connection, timeout),
// in which case Err carries the transport cause.
type UpstreamError struct {
	URL    string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream status %d for %s", e.Status, e.URL)
	}
	return fmt.Sprintf("upstream request %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsStatusError reports whether the upstream answered with a non-200 status.
func (e *UpstreamError) IsStatusError() bool {
	return e.Status != 0
}

// NewStatusError wraps a non-200 upstream response.
func NewStatusError(url string, status int) *UpstreamError {
	return &UpstreamError{URL: url, Status: status}
}

// NewConnectError wraps a transport-level failure reaching the upstream.
func NewConnectError(url string, err error) *UpstreamError {
	return &UpstreamError{URL: url, Err: err}
}

// AsUpstreamError extracts an UpstreamError from an error chain.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	ok := errors.As(err, &ue)
	return ue, ok
}
