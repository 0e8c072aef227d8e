package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		RunID:        uuid.NewString(),
		Library:      "lodash",
		StartedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:     1200 * time.Millisecond,
		FileCount:    3,
		WarningCount: 2,
	}
	passes := []PassTiming{
		{Pass: "HandleCommonJSModules", Ordinal: 0, Duration: 40 * time.Millisecond, Changed: true},
		{Pass: "MoveGlobals", Ordinal: 1, Duration: 5 * time.Millisecond},
	}
	if err := store.SaveRun(run, passes); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := store.LoadRuns("lodash", time.Time{})
	if err != nil {
		t.Fatalf("LoadRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID != run.RunID || got.Library != "lodash" || got.FileCount != 3 || got.WarningCount != 2 {
		t.Errorf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("timestamp round-trip: got %v want %v", got.StartedAt, run.StartedAt)
	}
	if got.Duration != run.Duration {
		t.Errorf("duration round-trip: got %v want %v", got.Duration, run.Duration)
	}

	timings, err := store.LoadPassTimings(run.RunID)
	if err != nil {
		t.Fatalf("LoadPassTimings failed: %v", err)
	}
	if len(timings) != 2 {
		t.Fatalf("expected 2 timings, got %d", len(timings))
	}
	if timings[0].Pass != "HandleCommonJSModules" || !timings[0].Changed {
		t.Errorf("unexpected first timing: %+v", timings[0])
	}
	if timings[1].Pass != "MoveGlobals" || timings[1].Changed {
		t.Errorf("unexpected second timing: %+v", timings[1])
	}
}

func TestSaveRunUpsert(t *testing.T) {
	store := openTestStore(t)

	run := Run{RunID: uuid.NewString(), Library: "react", FileCount: 1}
	if err := store.SaveRun(run, nil); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	run.FileCount = 5
	run.Failed = true
	if err := store.SaveRun(run, nil); err != nil {
		t.Fatalf("second SaveRun failed: %v", err)
	}

	runs, err := store.LoadRuns("react", time.Time{})
	if err != nil {
		t.Fatalf("LoadRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected upsert to keep a single row, got %d", len(runs))
	}
	if runs[0].FileCount != 5 || !runs[0].Failed {
		t.Errorf("upsert did not apply: %+v", runs[0])
	}
}

func TestLoadRunsSinceFilter(t *testing.T) {
	store := openTestStore(t)

	old := Run{RunID: uuid.NewString(), Library: "node", StartedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	recent := Run{RunID: uuid.NewString(), Library: "node", StartedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	for _, r := range []Run{old, recent} {
		if err := store.SaveRun(r, nil); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := store.LoadRuns("node", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("LoadRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != recent.RunID {
		t.Errorf("since filter failed: %+v", runs)
	}
}

func TestSaveRunRejectsEmptyID(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveRun(Run{Library: "x"}, nil); err == nil {
		t.Fatal("expected error for empty run id")
	}
}
