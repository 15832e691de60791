package metrics

import "time"

// NoopSink is a no-op implementation of Sink.
// Used when metrics are disabled to avoid nil checks.
type NoopSink struct{}

// NewNoopSink returns a no-op metrics sink.
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) AttemptCompleted(resource string, attempt int, statusClass string, d time.Duration) {}
func (n *NoopSink) RetryAttempt(resource string) {}
func (n *NoopSink) FetchOutcome(resource string, outcome string) {}
func (n *NoopSink) InFlightIncr(resource string) {}
func (n *NoopSink) InFlightDecr(resource string) {}
func (n *NoopSink) StateTransition(resource string, status string) {}
