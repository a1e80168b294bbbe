package runlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"artpack/internal/runlog"
	"artpack/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := runlog.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := runlog.Run{
			ID:            uuid.NewString(),
			SourceArchive: "/tmp/in.zip",
			OutputArchive: "/tmp/out.zip",
			ManifestPath:  "/tmp/artists_manifest.csv",
			ReportPath:    "/tmp/import_report.csv",
			StartedAt:     base.Add(time.Duration(i) * time.Hour),
			FinishedAt:    base.Add(time.Duration(i)*time.Hour + 2*time.Minute),
			Artists:       5 + i,
			Photos:        20,
			Failures:      i,
		}
		if err := store.Record(context.Background(), run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	runs, err := store.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Artists != 7 || runs[1].Artists != 6 {
		t.Fatalf("runs not newest-first: %+v", runs)
	}
	if runs[0].Duration() != 2*time.Minute {
		t.Fatalf("duration = %v, want 2m", runs[0].Duration())
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := runlog.Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = runlog.Open(cfg)
	if err != nil {
		t.Fatalf("second Open against existing schema: %v", err)
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(runs))
	}
}
