package spacex

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/brunojasgv/spacex/core"
	"github.com/brunojasgv/spacex/domain"
	"github.com/google/uuid"
)

// ErrRecorderClosed is returned by WriteLog after Close.
var ErrRecorderClosed = errors.New("recorder is closed")

// HistoryRepository is the storage the Recorder writes to.
type HistoryRepository interface {
	domain.FetchRecordRepository
	domain.LogRepository
}

// historyItem is either a *domain.FetchRecord or a *domain.Log.
type historyItem any

// Recorder persists fetch attempts and log entries on a single writer goroutine.
// Writers block only when the buffer is full.
type Recorder struct {
	repo   HistoryRepository
	logger *slog.Logger
	items  chan historyItem
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewRecorder starts the writer goroutine. A buffer of 0 or less uses 10 entries.
func NewRecorder(repo HistoryRepository, logger *slog.Logger, buffer int) (*Recorder, error) {
	if repo == nil {
		return nil, errors.New("history repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = 10
	}
	r := &Recorder{
		repo:   repo,
		logger: logger,
		items:  make(chan historyItem, buffer),
		done:   make(chan struct{}),
	}
	go r.writeToDB()
	return r, nil
}

func (r *Recorder) writeToDB() {
	defer close(r.done)
	for item := range r.items {
		switch castItem := item.(type) {
		case *domain.FetchRecord:
			if err := r.repo.InsertFetchRecord(castItem); err != nil {
				r.logger.Error("persisting fetch record", "id", castItem.ID, "error", err)
			}
		case *domain.Log:
			if err := r.repo.InsertLog(castItem); err != nil {
				r.logger.Error("persisting log", "id", castItem.ID, "error", err)
			}
		default:
			r.logger.Warn("unknown history item", "type", fmt.Sprintf("%T", castItem))
		}
	}
}

func (r *Recorder) enqueue(item historyItem) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}
	r.items <- item
	return true
}

// RecordAttempt queues a fetch attempt. Attempts recorded after Close are dropped.
func (r *Recorder) RecordAttempt(record *domain.FetchRecord) {
	if record == nil {
		return
	}
	if !r.enqueue(record) {
		r.logger.Debug("dropping fetch record after close", "id", record.ID)
	}
}

// WriteLog queues a persisted log entry. level is one of DEBUG, INFO, WARN or ERROR.
func (r *Recorder) WriteLog(level string, message string, options ...core.LogOption) error {
	level = strings.ToUpper(level)
	switch level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("level should be either: debug, info, warn, error")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating new uuid : %w", err)
	}
	log := &domain.Log{
		ID:        id,
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
	for _, option := range options {
		if err := option(log); err != nil {
			return fmt.Errorf("applying log option : %w", err)
		}
	}
	if !r.enqueue(log) {
		return ErrRecorderClosed
	}
	return nil
}

// Close stops accepting items and waits until everything queued is persisted. It does not close the repository.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.items)
	r.mu.Unlock()

	<-r.done
	return nil
}
