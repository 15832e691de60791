package db

import (
	"fmt"
	"time"

	"github.com/brunojasgv/spacex/domain"
	"github.com/google/uuid"
)

var _ domain.FetchRecordRepository = (*Repository)(nil)

// dbFetchRecord represents a fetch attempt as stored in the database.
type dbFetchRecord struct {
	ID          uuid.UUID `db:"id"`
	ExecutionID uuid.UUID `db:"execution_id"`
	Resource    string    `db:"resource"`
	URL         string    `db:"url"`
	Attempt     int       `db:"attempt"`
	StatusCode  int       `db:"status_code"`
	Outcome     string    `db:"outcome"`
	Error       string    `db:"error"`
	DurationNS  int64     `db:"duration_ns"`
	StartedAt   time.Time `db:"started_at"`
}

const fetchRecordColumns = `id, execution_id, resource, url, attempt, status_code, outcome, error, duration_ns, started_at`

func toDomainFetchRecord(r *dbFetchRecord) *domain.FetchRecord {
	return &domain.FetchRecord{
		ID:          r.ID,
		ExecutionID: r.ExecutionID,
		Resource:    r.Resource,
		URL:         r.URL,
		Attempt:     r.Attempt,
		StatusCode:  r.StatusCode,
		Outcome:     domain.FetchOutcome(r.Outcome),
		Error:       r.Error,
		Duration:    time.Duration(r.DurationNS),
		StartedAt:   r.StartedAt,
	}
}

func fromDomainFetchRecord(r *domain.FetchRecord) *dbFetchRecord {
	return &dbFetchRecord{
		ID:          r.ID,
		ExecutionID: r.ExecutionID,
		Resource:    r.Resource,
		URL:         r.URL,
		Attempt:     r.Attempt,
		StatusCode:  r.StatusCode,
		Outcome:     string(r.Outcome),
		Error:       r.Error,
		DurationNS:  int64(r.Duration),
		StartedAt:   r.StartedAt,
	}
}

// InsertFetchRecord saves a single attempt to the database.
func (repo *Repository) InsertFetchRecord(record *domain.FetchRecord) error {
	query := `INSERT INTO fetch_records (` + fetchRecordColumns + `)
	          VALUES (:id, :execution_id, :resource, :url, :attempt, :status_code, :outcome, :error, :duration_ns, :started_at)`

	_, err := repo.dbConn.NamedExec(query, fromDomainFetchRecord(record))
	if err != nil {
		return fmt.Errorf("inserting fetch record %s: %w", record.ID, err)
	}
	return nil
}

// GetFetchRecords returns the newest attempts first. A limit of 0 or less returns all of them.
func (repo *Repository) GetFetchRecords(limit int) ([]*domain.FetchRecord, error) {
	var rows []*dbFetchRecord
	query := `SELECT ` + fetchRecordColumns + ` FROM fetch_records ORDER BY started_at DESC, attempt DESC`

	var err error
	if limit > 0 {
		err = repo.dbConn.Select(&rows, query+` LIMIT ?`, limit)
	} else {
		err = repo.dbConn.Select(&rows, query)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching fetch records: %w", err)
	}

	records := make([]*domain.FetchRecord, len(rows))
	for i, row := range rows {
		records[i] = toDomainFetchRecord(row)
	}
	return records, nil
}

// GetExecutionRecords returns the attempts of one execution ordered by attempt number.
func (repo *Repository) GetExecutionRecords(executionID uuid.UUID) ([]*domain.FetchRecord, error) {
	var rows []*dbFetchRecord
	query := `SELECT ` + fetchRecordColumns + ` FROM fetch_records WHERE execution_id = ? ORDER BY attempt`

	if err := repo.dbConn.Select(&rows, query, executionID); err != nil {
		return nil, fmt.Errorf("fetching records for execution %s: %w", executionID, err)
	}

	records := make([]*domain.FetchRecord, len(rows))
	for i, row := range rows {
		records[i] = toDomainFetchRecord(row)
	}
	return records, nil
}

// CountFetchRecords returns the number of stored attempts per outcome.
func (repo *Repository) CountFetchRecords() (map[domain.FetchOutcome]int, error) {
	var rows []struct {
		Outcome string `db:"outcome"`
		Count   int    `db:"count"`
	}
	query := `SELECT outcome, COUNT(*) AS count FROM fetch_records GROUP BY outcome`

	if err := repo.dbConn.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("counting fetch records: %w", err)
	}

	counts := make(map[domain.FetchOutcome]int, len(rows))
	for _, row := range rows {
		counts[domain.FetchOutcome(row.Outcome)] = row.Count
	}
	return counts, nil
}
