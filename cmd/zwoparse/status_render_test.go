package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
	"github.com/alexshpunt/zwift-workouts-parser/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Summary", statusError, "1 failed", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Summary:", "[ERROR] 1 failed")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Summary", statusOK, "done", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestCountsStatusKind(t *testing.T) {
	cases := []struct {
		counts history.Counts
		want   statusKind
	}{
		{history.Counts{}, statusInfo},
		{history.Counts{Workouts: 2, Converted: 2}, statusOK},
		{history.Counts{Workouts: 2, Converted: 1, Partial: 1}, statusWarn},
		{history.Counts{Workouts: 2, Converted: 1, Skipped: 1}, statusWarn},
		{history.Counts{Workouts: 2, Partial: 1, Failed: 1}, statusError},
	}
	for _, tc := range cases {
		if got := countsStatusKind(tc.counts); got != tc.want {
			t.Fatalf("countsStatusKind(%+v) = %v, want %v", tc.counts, got, tc.want)
		}
	}
}

func TestWorkoutStatusKind(t *testing.T) {
	if workoutStatusKind(history.StatusConverted) != statusOK {
		t.Fatal("converted should be OK")
	}
	if workoutStatusKind(history.StatusSkipped) != statusWarn {
		t.Fatal("skipped should warn")
	}
	if workoutStatusKind(history.StatusFailed) != statusError {
		t.Fatal("failed should be an error")
	}
}

func TestPreflightLines(t *testing.T) {
	lines := preflightLines([]preflight.Result{
		{Name: "Export directory", Passed: true, Detail: "/tmp/out (read/write ok)"},
		{Name: "Input", Detail: "plan.toml (error: does not exist)"},
	}, false)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] /tmp/out (read/write ok)") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[ERROR] plan.toml (error: does not exist)") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestTableSpecPadsShortRows(t *testing.T) {
	out := tableSpec{
		headers: []string{"A", "B", "C"},
		rows:    [][]string{{"x"}},
		footer:  []string{"total"},
	}.render()
	if !strings.Contains(out, "x") || !strings.Contains(out, "TOTAL") && !strings.Contains(out, "total") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if (tableSpec{}).render() != "" {
		t.Fatal("expected empty table without headers")
	}
}
