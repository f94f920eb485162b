package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the fetch routine can produce. The set
// is closed: nothing escapes the fetcher without landing in one of these.
type ErrorKind string

const (
	// ErrInvalidURL means the encoded inputs could not form a well-formed URL
	ErrInvalidURL ErrorKind = "InvalidURL"

	// ErrNetwork covers transport failures and non-200 HTTP statuses
	ErrNetwork ErrorKind = "Network"

	// ErrInvalidResponse means the response payload could not be consumed as
	// a valid HTTP body
	ErrInvalidResponse ErrorKind = "InvalidResponse"

	// ErrDestinationUnavailable means the output directory could not be resolved
	ErrDestinationUnavailable ErrorKind = "DestinationUnavailable"

	// ErrFileWriteFailed means removing the previous file or moving the new
	// one into place failed
	ErrFileWriteFailed ErrorKind = "FileWriteFailed"
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	return string(k)
}

// DownloadError is implemented by every failure variant, so callers can
// branch on the kind without unwrapping chains by hand.
type DownloadError interface {
	error
	Kind() ErrorKind
}

// KindOf extracts the failure kind from an error chain. The second return
// is false when the error did not originate from the fetch routine.
func KindOf(err error) (ErrorKind, bool) {
	var de DownloadError
	if errors.As(err, &de) {
		return de.Kind(), true
	}
	return "", false
}

// RequestError reports inputs that could not form a well-formed request URL.
type RequestError struct {
	URL   string
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid download URL %q: %v", e.URL, e.Cause)
}

func (e *RequestError) Unwrap() error { return e.Cause }

// Kind returns ErrInvalidURL
func (e *RequestError) Kind() ErrorKind { return ErrInvalidURL }

// TransferError reports a transport failure or a non-200 HTTP status.
// StatusCode is zero when the request never produced an HTTP response
// (DNS failure, refused connection, timeout, TLS error).
type TransferError struct {
	URL        string
	StatusCode int
	Detail     string // best-effort text decoded from a non-200 response body
	Cause      error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		if e.Detail != "" {
			return fmt.Sprintf("marketplace returned HTTP %d: %s", e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("marketplace returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("download request failed: %v", e.Cause)
}

func (e *TransferError) Unwrap() error { return e.Cause }

// Kind returns ErrNetwork
func (e *TransferError) Kind() ErrorKind { return ErrNetwork }

// ResponseError reports a response whose payload could not be read back as
// a valid HTTP body (truncated or garbled mid-stream).
type ResponseError struct {
	URL   string
	Cause error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unreadable response from %s: %v", e.URL, e.Cause)
}

func (e *ResponseError) Unwrap() error { return e.Cause }

// Kind returns ErrInvalidResponse
func (e *ResponseError) Kind() ErrorKind { return ErrInvalidResponse }

// DestinationError reports that the output directory could not be resolved.
type DestinationError struct {
	Cause error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("download directory unavailable: %v", e.Cause)
}

func (e *DestinationError) Unwrap() error { return e.Cause }

// Kind returns ErrDestinationUnavailable
func (e *DestinationError) Kind() ErrorKind { return ErrDestinationUnavailable }

// WriteError reports a failed removal of the previous package file or a
// failed move of the downloaded payload into place.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

// Kind returns ErrFileWriteFailed
func (e *WriteError) Kind() ErrorKind { return ErrFileWriteFailed }
