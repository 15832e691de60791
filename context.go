package spacex

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey is the context key for the execution ID (uuid.UUID) shared by every attempt of one Execute call
	RequestIDKey contextKey = "RequestID"
	// AttemptKey is the context key for the attempt number (int) of the request currently on the wire
	AttemptKey contextKey = "Attempt"
)

// ContextWithRequestID returns a new context carrying the execution ID
func ContextWithRequestID(ctx context.Context, requestID uuid.UUID) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFromContext returns the execution ID from the context if it exists
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RequestIDKey).(uuid.UUID)
	return id, ok
}

// ContextWithAttempt returns a new context carrying the attempt number
func ContextWithAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, AttemptKey, attempt)
}

// AttemptFromContext returns the attempt number from the context if it exists
func AttemptFromContext(ctx context.Context) (int, bool) {
	attempt, ok := ctx.Value(AttemptKey).(int)
	return attempt, ok
}
