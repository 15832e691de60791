package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink implements Sink using the Prometheus client library.
// Registration errors are logged but never propagated.
type PrometheusSink struct {
	logger *slog.Logger

	// Session metrics
	attemptsTotal      *prometheus.CounterVec
	attemptDuration    *prometheus.HistogramVec
	retryAttemptsTotal *prometheus.CounterVec
	outcomesTotal      *prometheus.CounterVec
	inFlight           *prometheus.GaugeVec

	// View-model metrics
	transitionsTotal *prometheus.CounterVec
}

// NewPrometheusSink creates a new Prometheus metrics sink registered on reg.
// A nil logger falls back to slog.Default().
func NewPrometheusSink(reg prometheus.Registerer, logger *slog.Logger) *PrometheusSink {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PrometheusSink{logger: logger}
	s.initSessionMetrics(reg)
	s.initViewModelMetrics(reg)
	return s
}

func (s *PrometheusSink) initSessionMetrics(reg prometheus.Registerer) {
	s.attemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spacex_session_attempts_total",
		Help: "Total number of HTTP attempts issued by the session.",
	}, []string{"resource", "attempt", "status_class"})

	s.attemptDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spacex_session_attempt_duration_seconds",
		Help:    "Latency of a single attempt including decoding, in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"resource"})

	s.retryAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spacex_session_retry_attempts_total",
		Help: "Total number of retry attempts (excludes first attempt).",
	}, []string{"resource"})

	s.outcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spacex_session_outcomes_total",
		Help: "Final outcome of each Execute call after retries.",
	}, []string{"resource", "outcome"})

	s.inFlight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spacex_session_in_flight",
		Help: "Number of Execute calls currently in flight.",
	}, []string{"resource"})

	s.register(reg, s.attemptsTotal, "spacex_session_attempts_total")
	s.register(reg, s.attemptDuration, "spacex_session_attempt_duration_seconds")
	s.register(reg, s.retryAttemptsTotal, "spacex_session_retry_attempts_total")
	s.register(reg, s.outcomesTotal, "spacex_session_outcomes_total")
	s.register(reg, s.inFlight, "spacex_session_in_flight")
}

func (s *PrometheusSink) initViewModelMetrics(reg prometheus.Registerer) {
	s.transitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spacex_viewmodel_state_transitions_total",
		Help: "Total number of fetch state transitions per resource and target status.",
	}, []string{"resource", "status"})

	s.register(reg, s.transitionsTotal, "spacex_viewmodel_state_transitions_total")
}

// register attempts to register a collector, logging any errors without propagating them.
func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		s.logger.Warn("metrics: failed to register collector", "name", name, "error", err)
	}
}

func (s *PrometheusSink) AttemptCompleted(resource string, attempt int, statusClass string, duration time.Duration) {
	s.attemptsTotal.WithLabelValues(resource, AttemptLabel(attempt), statusClass).Inc()
	s.attemptDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

func (s *PrometheusSink) RetryAttempt(resource string) {
	s.retryAttemptsTotal.WithLabelValues(resource).Inc()
}

func (s *PrometheusSink) FetchOutcome(resource string, outcome string) {
	s.outcomesTotal.WithLabelValues(resource, outcome).Inc()
}

func (s *PrometheusSink) InFlightIncr(resource string) {
	s.inFlight.WithLabelValues(resource).Inc()
}

func (s *PrometheusSink) InFlightDecr(resource string) {
	s.inFlight.WithLabelValues(resource).Dec()
}

func (s *PrometheusSink) StateTransition(resource string, status string) {
	s.transitionsTotal.WithLabelValues(resource, status).Inc()
}
