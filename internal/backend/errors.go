package backend

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload means the backend answered 2xx with a body that is not
// JSON.
var ErrInvalidPayload = errors.New("backend returned a non-JSON body")

// HTTPError is a non-2xx answer from a reachable backend.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// UnreachableError wraps a transport failure: refused connection, DNS
// failure, timeout or a body cut off mid-read.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("backend unreachable at %s: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}
