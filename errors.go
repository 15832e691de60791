package spacex

import (
	"errors"
	"fmt"
)

var (
	// ErrBadResponse is returned when the API answers with any status other than 200.
	ErrBadResponse = errors.New("bad response")
	// ErrDecode is returned when a 200 response body cannot be decoded into the requested shape.
	ErrDecode = errors.New("decoding failure")
	// ErrTransport is returned when no response was received at all.
	ErrTransport = errors.New("transport failure")
	// ErrUnknown is stored by Failed when it is given a nil error.
	ErrUnknown = errors.New("an unknown error has occurred")
	// ErrUnknownFilter is returned by ParseFilterMode and SetFilter for unrecognised modes.
	ErrUnknownFilter = errors.New("unknown filter mode")
	// ErrClosed is returned by SetFilter once the view-model is closed.
	ErrClosed = errors.New("view-model is closed")
)

// ResponseError carries the details of a non-200 response.
// It matches ErrBadResponse with errors.Is.
type ResponseError struct {
	StatusCode  int    // HTTP status code received.
	Status      string // Status line, e.g. "503 Service Unavailable".
	ContentType string // Sniffed content type of the body.
	Body        string // Truncated body of the response.
}

func (e *ResponseError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("%s: status %d", ErrBadResponse, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", ErrBadResponse, e.Status)
}

func (e *ResponseError) Unwrap() error {
	return ErrBadResponse
}
