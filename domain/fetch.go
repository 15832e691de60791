package domain

import (
	"time"

	"github.com/google/uuid"
)

// FetchOutcome is the result of one executed attempt.
type FetchOutcome string

const (
	OutcomeSuccess     FetchOutcome = "success"
	OutcomeBadResponse FetchOutcome = "bad_response"
	OutcomeDecode      FetchOutcome = "decode_failure"
	OutcomeTransport   FetchOutcome = "transport_failure"
)

// FetchRecordRepository defines the interface for persisting the fetch history.
// Only request metadata is stored, never the decoded payloads.
type FetchRecordRepository interface {
	// InsertFetchRecord saves a single attempt.
	InsertFetchRecord(record *FetchRecord) error
	// GetFetchRecords returns the most recent attempts, newest first, up to limit entries.
	// A limit of 0 or less returns every record.
	GetFetchRecords(limit int) ([]*FetchRecord, error)
	// GetExecutionRecords returns every attempt of a single Execute call ordered by attempt number.
	GetExecutionRecords(executionID uuid.UUID) ([]*FetchRecord, error)
	// CountFetchRecords counts the stored attempts per outcome.
	CountFetchRecords() (map[FetchOutcome]int, error)
}

// FetchRecord describes one HTTP attempt made by the session.
type FetchRecord struct {
	ID          uuid.UUID     // Unique identifier of the attempt.
	ExecutionID uuid.UUID     // Shared by all attempts of one Execute call.
	Resource    string        // Logical resource, e.g. "launches" or "company".
	URL         string        // Requested URL.
	Attempt     int           // 1 for the first try, incremented on every retry.
	StatusCode  int           // HTTP status code, 0 when no response was received.
	Outcome     FetchOutcome  // Classification of the attempt.
	Error       string        // Error message, empty on success.
	Duration    time.Duration // Time spent on the attempt including decoding.
	StartedAt   time.Time     // When the attempt was issued.
}
