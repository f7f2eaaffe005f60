package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError describes a failed catalog request: network errors,
// non-2xx responses and malformed payloads all end up here.
type FetchError struct {
	Op         string // "search" or "get"
	Target     string // query or id
	StatusCode int    // 0 when no response was received
	RequestID  string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s %q: status %d: %v", e.Op, e.Target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog %s %q: %v", e.Op, e.Target, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transient reports whether retrying the same request could succeed.
// Client errors other than 408 and 429 are permanent.
func (e *FetchError) Transient() bool {
	if e.StatusCode == 0 || e.StatusCode >= 500 {
		return true
	}
	return e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests
}

// RequestIDFrom extracts the request id carried by a FetchError.
func RequestIDFrom(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.RequestID
	}
	return ""
}
