package spacex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"reflect"
	"time"

	"github.com/brunojasgv/spacex/core"
	"github.com/brunojasgv/spacex/domain"
	"github.com/brunojasgv/spacex/metrics"
	"github.com/brunojasgv/spacex/rawhttp"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of a non-200 body is kept on the ResponseError.
const maxErrorBody = 512

// Session executes a request and decodes the JSON response into target.
// target must be a non-nil pointer. On failure the request is re-issued up to retries additional times.
type Session interface {
	Execute(ctx context.Context, req *http.Request, target any, retries int) error
}

// AttemptRecorder receives every attempt made by an HTTPSession.
type AttemptRecorder interface {
	RecordAttempt(record *domain.FetchRecord)
}

// HTTPSession is the production Session backed by an *http.Client.
type HTTPSession struct {
	client   *http.Client
	logger   *slog.Logger
	metrics  metrics.Sink
	recorder AttemptRecorder
	journal  Journal
	dump     bool
	now      func() time.Time
}

// NewHTTPSession creates a session around client. A nil client is replaced by a new zero http.Client.
func NewHTTPSession(client *http.Client, options ...SessionOption) (*HTTPSession, error) {
	if client == nil {
		client = &http.Client{}
	}
	s := &HTTPSession{
		client:  client,
		logger:  slog.Default(),
		metrics: metrics.NewNoopSink(),
		now:     time.Now,
	}
	if err := s.WithOptions(options...); err != nil {
		return nil, err
	}
	return s, nil
}

// WithOptions applies a series of configuration functions to the session.
func (s *HTTPSession) WithOptions(options ...SessionOption) error {
	for _, option := range options {
		if err := option(s); err != nil {
			return fmt.Errorf("applying option on session : %w", err)
		}
	}
	return nil
}

// Execute issues req and decodes a 200 response into target.
// Any failure (non-200 status, undecodable body or transport error) is retried while retries remain;
// the error of the last attempt is returned. target is only written on success.
func (s *HTTPSession) Execute(ctx context.Context, req *http.Request, target any, retries int) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer, got %T", ErrDecode, target)
	}
	if retries < 0 {
		retries = 0
	}

	executionID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating execution id : %w", err)
	}
	ctx = ContextWithRequestID(ctx, executionID)
	resource := resourceName(req)

	s.metrics.InFlightIncr(resource)
	defer s.metrics.InFlightDecr(resource)

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= retries+1; attempt++ {
		if attempt > 1 {
			if ctx.Err() != nil {
				break
			}
			s.metrics.RetryAttempt(resource)
			s.logger.Debug("retrying request", "resource", resource, "attempt", attempt, "execution_id", executionID)
		}

		attempts = attempt
		fresh := reflect.New(rv.Elem().Type())
		lastErr = s.attempt(ContextWithAttempt(ctx, attempt), req, fresh.Interface(), resource, attempt)
		if lastErr == nil {
			rv.Elem().Set(fresh.Elem())
			s.metrics.FetchOutcome(resource, metrics.OutcomeSuccess)
			s.journalOutcome(executionID, resource, attempts, nil)
			return nil
		}
		s.logger.Warn("request attempt failed", "resource", resource, "attempt", attempt, "execution_id", executionID, "error", lastErr)
	}

	s.metrics.FetchOutcome(resource, metrics.OutcomeFailed)
	s.journalOutcome(executionID, resource, attempts, lastErr)
	return lastErr
}

// journalOutcome persists the final outcome of an Execute call under its execution ID.
func (s *HTTPSession) journalOutcome(executionID uuid.UUID, resource string, attempts int, err error) {
	if s.journal == nil {
		return
	}
	level, message := "INFO", resource+" fetched"
	logContext := map[string]any{"resource": resource, "attempts": attempts}
	if err != nil {
		level, message = "WARN", resource+" fetch failed"
		logContext["error"] = err.Error()
	}
	if jErr := s.journal.WriteLog(level, message, core.LogWithFetchID(executionID), core.LogWithContext(logContext)); jErr != nil {
		s.logger.Error("writing fetch outcome", "resource", resource, "execution_id", executionID, "error", jErr)
	}
}

// attempt performs a single round trip and decodes into target.
func (s *HTTPSession) attempt(ctx context.Context, req *http.Request, target any, resource string, attempt int) error {
	started := s.now()
	outgoing := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return fmt.Errorf("%w: rewinding request body : %w", ErrTransport, err)
		}
		outgoing.Body = body
	}

	res, err := s.client.Do(outgoing)
	if err != nil {
		// undecodable compressed bodies surface from the transport already marked as ErrDecode
		if !errors.Is(err, ErrDecode) {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		s.finish(ctx, req, resource, attempt, 0, started, err)
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err := s.badResponse(req, res)
		s.finish(ctx, req, resource, attempt, res.StatusCode, started, err)
		return err
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("%w: reading response body : %w", ErrTransport, err)
		s.finish(ctx, req, resource, attempt, res.StatusCode, started, err)
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		err = fmt.Errorf("%w: %s body for %s : %w", ErrDecode, rawhttp.DetectMIME(body), resource, err)
		s.finish(ctx, req, resource, attempt, res.StatusCode, started, err)
		return err
	}

	s.finish(ctx, req, resource, attempt, res.StatusCode, started, nil)
	return nil
}

func (s *HTTPSession) badResponse(req *http.Request, res *http.Response) error {
	if s.dump {
		if dump, err := rawhttp.DumpResponse(res); err == nil {
			s.logger.Debug("non-200 response", "url", req.URL.String(), "dump", dump)
		}
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return &ResponseError{
		StatusCode:  res.StatusCode,
		Status:      res.Status,
		ContentType: rawhttp.DetectMIME(body),
		Body:        rawhttp.Snippet(body, maxErrorBody),
	}
}

// finish reports a completed attempt to the metrics sink and the recorder.
func (s *HTTPSession) finish(ctx context.Context, req *http.Request, resource string, attempt, statusCode int, started time.Time, err error) {
	duration := s.now().Sub(started)

	var transportErr error
	if errors.Is(err, ErrTransport) {
		transportErr = err
	}
	s.metrics.AttemptCompleted(resource, attempt, metrics.ClassifyStatus(statusCode, transportErr), duration)

	if s.recorder == nil {
		return
	}
	id, idErr := uuid.NewV7()
	if idErr != nil {
		s.logger.Error("generating fetch record id", "error", idErr)
		return
	}
	executionID, _ := RequestIDFromContext(ctx)
	record := &domain.FetchRecord{
		ID:          id,
		ExecutionID: executionID,
		Resource:    resource,
		URL:         req.URL.String(),
		Attempt:     attempt,
		StatusCode:  statusCode,
		Outcome:     outcomeOf(err),
		Duration:    duration,
		StartedAt:   started,
	}
	if err != nil {
		record.Error = err.Error()
	}
	s.recorder.RecordAttempt(record)
}

func outcomeOf(err error) domain.FetchOutcome {
	switch {
	case err == nil:
		return domain.OutcomeSuccess
	case errors.Is(err, ErrBadResponse):
		return domain.OutcomeBadResponse
	case errors.Is(err, ErrDecode):
		return domain.OutcomeDecode
	default:
		return domain.OutcomeTransport
	}
}

// resourceName derives a resource label from the last path segment, e.g. "launches" for /v4/launches.
func resourceName(req *http.Request) string {
	if req.URL == nil {
		return "unknown"
	}
	name := path.Base(req.URL.Path)
	if name == "/" || name == "." {
		return "root"
	}
	return name
}

// Result is the single value delivered by Go and ExecuteAsync.
// Value is the zero value whenever Err is non-nil.
type Result[T any] struct {
	Value T
	Err   error
}

// Go runs fn on its own goroutine and delivers exactly one Result on the returned channel.
// The channel is buffered so the goroutine never leaks when nobody reads the result.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	results := make(chan Result[T], 1)
	go func() {
		defer close(results)
		value, err := fn(ctx)
		if err != nil {
			var zero T
			results <- Result[T]{Value: zero, Err: err}
			return
		}
		results <- Result[T]{Value: value}
	}()
	return results
}

// ExecuteAsync runs session.Execute on its own goroutine, decoding into a new T.
func ExecuteAsync[T any](ctx context.Context, session Session, req *http.Request, retries int) <-chan Result[T] {
	return Go(ctx, func(ctx context.Context) (T, error) {
		var value T
		err := session.Execute(ctx, req, &value, retries)
		return value, err
	})
}
