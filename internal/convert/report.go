package convert

import (
	"time"

	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
	"github.com/alexshpunt/zwift-workouts-parser/internal/intervals"
)

// Result is the outcome of one workout.
type Result struct {
	Position   int
	Label      string
	Source     string
	Name       string
	Status     history.Status
	OutputPath string
	Intervals  int
	Seconds    int
	RowErrors  intervals.RowErrors
	Err        error
}

// Diagnostics flattens row failures and the workout-level error into history rows.
func (r Result) Diagnostics() []history.Diagnostic {
	diags := make([]history.Diagnostic, 0, len(r.RowErrors)+1)
	for _, rowErr := range r.RowErrors {
		diags = append(diags, history.Diagnostic{
			RowIndex: rowErr.Index,
			RowText:  rowErr.Text,
			Message:  rowErr.Err.Error(),
		})
	}
	if r.Err != nil {
		diags = append(diags, history.Diagnostic{RowIndex: -1, Message: r.Err.Error()})
	}
	return diags
}

func (r Result) record(runID string) *history.Workout {
	w := &history.Workout{
		RunID:       runID,
		Position:    r.Position,
		Name:        r.Label,
		Source:      r.Source,
		Status:      r.Status,
		OutputPath:  r.OutputPath,
		Intervals:   r.Intervals,
		Seconds:     r.Seconds,
		FailedRows:  len(r.RowErrors),
		Diagnostics: r.Diagnostics(),
	}
	if r.Err != nil {
		w.Message = r.Err.Error()
	}
	return w
}

// Report summarizes a run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Results    []Result
	Counts     history.Counts
}

// Elapsed returns the wall time of the run.
func (r *Report) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
