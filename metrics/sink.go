// Package metrics records client side metrics for fetches and view-model state changes.
package metrics

import (
	"context"
	"errors"
	"net"
	"time"
)

// Sink defines the interface for recording metrics.
// All methods are fire-and-forget: implementations MUST NOT block or propagate errors.
type Sink interface {
	// Session metrics
	AttemptCompleted(resource string, attempt int, statusClass string, duration time.Duration)
	RetryAttempt(resource string)
	FetchOutcome(resource string, outcome string)
	InFlightIncr(resource string)
	InFlightDecr(resource string)

	// View-model metrics
	StateTransition(resource string, status string)
}

// Outcome constants for FetchOutcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Attempt label values for AttemptCompleted.
const (
	AttemptFirst = "first"
	AttemptRetry = "retry"
)

// AttemptLabel buckets an attempt number so the label stays bounded whatever the retry count.
func AttemptLabel(attempt int) string {
	if attempt <= 1 {
		return AttemptFirst
	}
	return AttemptRetry
}

// StatusClass constants for AttemptCompleted.
const (
	StatusClass2xx             = "2xx"
	StatusClass3xx             = "3xx"
	StatusClass4xx             = "4xx"
	StatusClass5xx             = "5xx"
	StatusClassTimeout         = "timeout"
	StatusClassCanceled        = "canceled"
	StatusClassConnectionError = "connection_error"
	StatusClassOtherError      = "other_error"
)

// ClassifyStatus maps a status code and a transport error to a status class.
// A non-nil err takes precedence over the status code.
func ClassifyStatus(statusCode int, err error) string {
	if err != nil {
		var netErr net.Error
		var opErr *net.OpError
		switch {
		case errors.Is(err, context.Canceled):
			return StatusClassCanceled
		case errors.Is(err, context.DeadlineExceeded):
			return StatusClassTimeout
		case errors.As(err, &netErr) && netErr.Timeout():
			return StatusClassTimeout
		case errors.As(err, &opErr):
			return StatusClassConnectionError
		default:
			var dnsErr *net.DNSError
			if errors.As(err, &dnsErr) {
				return StatusClassConnectionError
			}
			return StatusClassOtherError
		}
	}

	switch {
	case statusCode >= 200 && statusCode < 300:
		return StatusClass2xx
	case statusCode >= 300 && statusCode < 400:
		return StatusClass3xx
	case statusCode >= 400 && statusCode < 500:
		return StatusClass4xx
	case statusCode >= 500:
		return StatusClass5xx
	default:
		return StatusClassOtherError
	}
}
