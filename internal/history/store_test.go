package history_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
	"github.com/alexshpunt/zwift-workouts-parser/internal/testsupport"
)

func TestRecordAndReadRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	run := history.Run{
		ID:        "3f1c9a2e-0000-4000-8000-000000000001",
		StartedAt: started,
		Sources:   []string{"a.toml", "b.txt"},
		ExportDir: cfg.Paths.ExportDir,
	}
	if err := store.BeginRun(ctx, run); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	first := &history.Workout{
		RunID:      run.ID,
		Position:   0,
		Name:       "Threshold",
		Source:     "a.toml",
		Status:     history.StatusPartial,
		OutputPath: "/tmp/out/threshold.zwo",
		Intervals:  3,
		Seconds:    3600,
		FailedRows: 1,
		Diagnostics: []history.Diagnostic{
			{RowIndex: 2, RowText: "garbage text", Message: `malformed interval "garbage text"`},
		},
	}
	second := &history.Workout{
		RunID:    run.ID,
		Position: 1,
		Name:     "Run Intervals",
		Source:   "b.txt",
		Status:   history.StatusSkipped,
		Message:  "sport type is not bike",
		Diagnostics: []history.Diagnostic{
			{RowIndex: -1, Message: "sport type is not bike"},
		},
	}
	for _, w := range []*history.Workout{first, second} {
		if err := store.RecordWorkout(ctx, w); err != nil {
			t.Fatalf("RecordWorkout failed: %v", err)
		}
		if w.ID == 0 {
			t.Fatal("expected workout id to be assigned")
		}
	}

	var counts history.Counts
	counts.Add(first.Status)
	counts.Add(second.Status)
	if err := store.FinishRun(ctx, run.ID, counts, started.Add(time.Second)); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if !got.Finished() {
		t.Fatal("expected run to be finished")
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("unexpected start time: %v", got.StartedAt)
	}
	if got.Counts != (history.Counts{Workouts: 2, Partial: 1, Skipped: 1}) {
		t.Fatalf("unexpected counts: %+v", got.Counts)
	}
	if len(got.Sources) != 2 || got.Sources[1] != "b.txt" {
		t.Fatalf("unexpected sources: %v", got.Sources)
	}

	workouts, err := store.Workouts(ctx, run.ID)
	if err != nil {
		t.Fatalf("Workouts failed: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(workouts))
	}
	if workouts[0].Name != "Threshold" || workouts[0].Status != history.StatusPartial {
		t.Fatalf("unexpected first workout: %+v", workouts[0])
	}
	if len(workouts[0].Diagnostics) != 1 || workouts[0].Diagnostics[0].RowIndex != 2 {
		t.Fatalf("unexpected diagnostics: %+v", workouts[0].Diagnostics)
	}
	if workouts[1].OutputPath != "" || workouts[1].Message != "sport type is not bike" {
		t.Fatalf("unexpected second workout: %+v", workouts[1])
	}
}

func TestGetRunByPrefix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"abc123", "abd456"} {
		if err := store.BeginRun(ctx, history.Run{ID: id}); err != nil {
			t.Fatalf("BeginRun %s failed: %v", id, err)
		}
	}

	run, err := store.GetRun(ctx, "abc")
	if err != nil {
		t.Fatalf("GetRun by prefix failed: %v", err)
	}
	if run.ID != "abc123" {
		t.Fatalf("unexpected run: %s", run.ID)
	}

	if _, err := store.GetRun(ctx, "ab"); !errors.Is(err, history.ErrAmbiguousRun) {
		t.Fatalf("expected ambiguous error, got %v", err)
	}
	if _, err := store.GetRun(ctx, "zzz"); !errors.Is(err, history.ErrRunNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := store.FinishRun(ctx, "zzz", history.Counts{}, time.Now()); !errors.Is(err, history.ErrRunNotFound) {
		t.Fatalf("expected not found when finishing unknown run, got %v", err)
	}
}

func TestListRunsNewestFirstAndPrune(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{"run-a", "run-b", "run-c"}
	for i, id := range ids {
		if err := store.BeginRun(ctx, history.Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("BeginRun failed: %v", err)
		}
		w := &history.Workout{RunID: id, Name: "w", Status: history.StatusConverted,
			Diagnostics: []history.Diagnostic{{RowIndex: -1, Message: "note"}}}
		if err := store.RecordWorkout(ctx, w); err != nil {
			t.Fatalf("RecordWorkout failed: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("unexpected run order: %+v", runs)
	}

	removed, err := store.Prune(ctx, 1)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 runs removed, got %d", removed)
	}
	all, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != "run-c" {
		t.Fatalf("unexpected runs after prune: %+v", all)
	}
	workouts, err := store.Workouts(ctx, "run-a")
	if err != nil {
		t.Fatalf("Workouts failed: %v", err)
	}
	if len(workouts) != 0 {
		t.Fatalf("expected pruned workouts to cascade, got %d", len(workouts))
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.BeginRun(context.Background(), history.Run{ID: "persisted"}); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	if _, err := reopened.GetRun(context.Background(), "persisted"); err != nil {
		t.Fatalf("expected run after reopen: %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	path := store.Path()
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := history.Open(cfg); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := history.ParseStatus("partial"); !ok || status != history.StatusPartial {
		t.Fatalf("unexpected parse result: %q %v", status, ok)
	}
	if _, ok := history.ParseStatus("exploded"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
}
