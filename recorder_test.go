package spacex

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/brunojasgv/spacex/core"
	"github.com/brunojasgv/spacex/db"
	"github.com/brunojasgv/spacex/domain"
	"github.com/google/uuid"
)

func setupTestRecorder(t *testing.T) (*Recorder, *db.Repository) {
	t.Helper()
	repo, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	t.Cleanup(func() { repo.Close() })

	recorder, err := NewRecorder(repo, nil, 4)
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	return recorder, repo
}

func TestRecorder(t *testing.T) {
	t.Run("persists attempts and logs before close returns", func(t *testing.T) {
		recorder, repo := setupTestRecorder(t)
		executionID := uuid.Must(uuid.NewV7())

		for attempt := 1; attempt <= 3; attempt++ {
			recorder.RecordAttempt(&domain.FetchRecord{
				ID:          uuid.Must(uuid.NewV7()),
				ExecutionID: executionID,
				Resource:    ResourceLaunches,
				URL:         "https://api.spacexdata.com/v4/launches",
				Attempt:     attempt,
				StatusCode:  503,
				Outcome:     domain.OutcomeBadResponse,
				Duration:    time.Millisecond,
				StartedAt:   time.Now().UTC(),
			})
		}
		if err := recorder.WriteLog("info", "launches loaded", core.LogWithFetchID(executionID)); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if err := recorder.Close(); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		records, err := repo.GetExecutionRecords(executionID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(records) != 3 {
			t.Fatalf("\nwanted:\n3\ngot:\n%d", len(records))
		}

		logs, err := repo.GetLogs()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(logs) != 1 || logs[0].Level != "INFO" || logs[0].FetchID == nil || *logs[0].FetchID != executionID {
			t.Fatalf("\nwanted:\none INFO log for %s\ngot:\n%+v", executionID, logs)
		}
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		recorder, _ := setupTestRecorder(t)
		defer recorder.Close()
		if err := recorder.WriteLog("FATAL", "nope"); err == nil {
			t.Fatal("\nwanted:\nerror\ngot:\nnil")
		}
	})

	t.Run("writes after close are refused", func(t *testing.T) {
		recorder, repo := setupTestRecorder(t)
		recorder.Close()
		recorder.Close()

		if err := recorder.WriteLog("INFO", "late"); err != ErrRecorderClosed {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrRecorderClosed, err)
		}
		recorder.RecordAttempt(&domain.FetchRecord{ID: uuid.Must(uuid.NewV7())})

		records, err := repo.GetFetchRecords(0)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(records) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(records))
		}
	})

	t.Run("session attempts flow into the history", func(t *testing.T) {
		recorder, repo := setupTestRecorder(t)
		session, err := NewHTTPSession(&http.Client{Transport: &testBaseRoundTripper{}}, WithRecorder(recorder))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		req, _ := NewRequest(context.Background(), InfoEndpoint)

		var company domain.Company
		if err := session.Execute(context.Background(), req, &company, 1); err == nil {
			t.Fatal("\nwanted:\nerror\ngot:\nnil")
		}
		recorder.Close()

		counts, err := repo.CountFetchRecords()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if counts[domain.OutcomeBadResponse] != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%v", counts)
		}
	})

	t.Run("requires a repository", func(t *testing.T) {
		if _, err := NewRecorder(nil, nil, 0); err == nil {
			t.Fatal("\nwanted:\nerror\ngot:\nnil")
		}
	})
}
