package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{DSN: "sqlite://" + filepath.Join(t.TempDir(), "history.db")}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	if err := db.HealthCheck(ctx, 0); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	repo := NewRunRepository(db, nil)

	okID, failID := uuid.New(), uuid.New()
	if _, err := repo.Start(ctx, okID, "Jane Doe.pdf", "out.xlsx"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := repo.FinishSuccess(ctx, okID, "filename", []byte(`{"First Name":"Jane"}`)); err != nil {
		t.Fatalf("FinishSuccess: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := repo.Start(ctx, failID, "missing.pdf", "out.xlsx"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := repo.FinishFailure(ctx, failID, "source unavailable"); err != nil {
		t.Fatalf("FinishFailure: %v", err)
	}

	runs, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	// Most recent first.
	failed, ok := runs[0], runs[1]
	if failed.ID != failID || failed.Status != constants.RunStatusFailed {
		t.Errorf("runs[0] = %+v", failed)
	}
	if failed.ErrorMessage == nil || *failed.ErrorMessage != "source unavailable" {
		t.Errorf("error message = %v", failed.ErrorMessage)
	}
	if ok.ID != okID || ok.Status != constants.RunStatusOK || ok.NameSource != "filename" {
		t.Errorf("runs[1] = %+v", ok)
	}
	if ok.FinishedAt == nil || ok.Duration() < 0 {
		t.Errorf("finished_at = %v", ok.FinishedAt)
	}
	if got := gjson.GetBytes(ok.RecordJSON, "First Name").String(); got != "Jane" {
		t.Errorf("record_json First Name = %q", got)
	}

	limited, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored, got %d runs", len(limited))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	for i := 0; i < 2; i++ {
		db, err := Open(context.Background(), Config{DSN: dsn}, nil)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		db.Close()
	}
}

func TestOpenCreatesRunsTable(t *testing.T) {
	db := openTestDB(t)
	var n int
	row := db.drv.DB().QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM "+runsTable+" WHERE status = ? AND name_source IS NULL", "OK")
	if err := row.Scan(&n); err != nil {
		t.Fatalf("query runs table: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh table has %d rows", n)
	}
}

func TestOpenBadPostgresDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{DSN: "postgres://%zz"}, nil)
	if !errors.Is(err, common.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}
