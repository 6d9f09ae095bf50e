package history

import "time"

// Status is the outcome of one workout within a run.
type Status string

const (
	// StatusConverted means every row parsed and the file was written.
	StatusConverted Status = "converted"
	// StatusPartial means the file was written without the rows that failed.
	StatusPartial Status = "partial"
	// StatusSkipped means the workout was left out on purpose (filter, no rows, drop policy).
	StatusSkipped Status = "skipped"
	// StatusFailed means the workout could not be rendered or written.
	StatusFailed Status = "failed"
)

var allStatuses = []Status{StatusConverted, StatusPartial, StatusSkipped, StatusFailed}

// ParseStatus converts a stored value back to a Status.
func ParseStatus(value string) (Status, bool) {
	for _, status := range allStatuses {
		if string(status) == value {
			return status, true
		}
	}
	return "", false
}

// Run summarizes one invocation of the converter.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Sources    []string
	ExportDir  string
	DryRun     bool
	Counts     Counts
}

// Counts tallies workout outcomes.
type Counts struct {
	Workouts  int
	Converted int
	Partial   int
	Skipped   int
	Failed    int
}

// Add records one outcome.
func (c *Counts) Add(status Status) {
	c.Workouts++
	switch status {
	case StatusConverted:
		c.Converted++
	case StatusPartial:
		c.Partial++
	case StatusSkipped:
		c.Skipped++
	case StatusFailed:
		c.Failed++
	}
}

// Finished reports whether the run recorded its completion.
func (r Run) Finished() bool {
	return r.FinishedAt != nil
}

// Workout is the recorded outcome of one workout description.
type Workout struct {
	ID          int64
	RunID       string
	Position    int
	Name        string
	Source      string
	Status      Status
	OutputPath  string
	Intervals   int
	Seconds     int
	FailedRows  int
	Message     string
	Diagnostics []Diagnostic
}

// Diagnostic explains why a row or workout was left out.
type Diagnostic struct {
	RowIndex int // zero-based, -1 for workout-level diagnostics
	RowText  string
	Message  string
}
