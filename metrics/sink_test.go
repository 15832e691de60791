package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		err        error
		want       string
	}{
		{name: "200", statusCode: 200, want: StatusClass2xx},
		{name: "301", statusCode: 301, want: StatusClass3xx},
		{name: "404", statusCode: 404, want: StatusClass4xx},
		{name: "503", statusCode: 503, want: StatusClass5xx},
		{name: "no status", statusCode: 0, want: StatusClassOtherError},
		{name: "canceled context", err: fmt.Errorf("send: %w", context.Canceled), want: StatusClassCanceled},
		{name: "deadline exceeded", err: fmt.Errorf("send: %w", context.DeadlineExceeded), want: StatusClassTimeout},
		{name: "net timeout", err: timeoutError{}, want: StatusClassTimeout},
		{name: "connection refused", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: StatusClassConnectionError},
		{name: "dns failure", err: &net.DNSError{Err: "no such host", Name: "api.spacexdata.invalid"}, want: StatusClassConnectionError},
		{name: "error wins over status", statusCode: 200, err: errors.New("boom"), want: StatusClassOtherError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(tt.statusCode, tt.err)
			if got != tt.want {
				t.Fatalf("\nwanted:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestNoopSink(t *testing.T) {
	t.Run("all methods should be callable without panicking", func(t *testing.T) {
		var sink Sink = NewNoopSink()

		sink.AttemptCompleted("launches", 1, StatusClass2xx, time.Second)
		sink.RetryAttempt("launches")
		sink.FetchOutcome("launches", OutcomeSuccess)
		sink.InFlightIncr("launches")
		sink.InFlightDecr("launches")
		sink.StateTransition("launches", "loaded")
	})
}
