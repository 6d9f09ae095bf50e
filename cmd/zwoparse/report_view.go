package main

import (
	"time"

	"github.com/alexshpunt/zwift-workouts-parser/internal/convert"
	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
)

type rowErrorView struct {
	Row     int    `json:"row"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message"`
}

type workoutView struct {
	Position   int            `json:"position"`
	Name       string         `json:"name"`
	Source     string         `json:"source,omitempty"`
	Status     string         `json:"status"`
	OutputPath string         `json:"output_path,omitempty"`
	Intervals  int            `json:"intervals"`
	Seconds    int            `json:"seconds"`
	Message    string         `json:"message,omitempty"`
	Rows       []rowErrorView `json:"row_errors,omitempty"`
}

type countsView struct {
	Workouts  int `json:"workouts"`
	Converted int `json:"converted"`
	Partial   int `json:"partial"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type runView struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	DryRun     bool          `json:"dry_run"`
	ExportDir  string        `json:"export_dir,omitempty"`
	Sources    []string      `json:"sources,omitempty"`
	Counts     countsView    `json:"counts"`
	Workouts   []workoutView `json:"workouts,omitempty"`
}

func newCountsView(c history.Counts) countsView {
	return countsView{
		Workouts:  c.Workouts,
		Converted: c.Converted,
		Partial:   c.Partial,
		Skipped:   c.Skipped,
		Failed:    c.Failed,
	}
}

func newReportView(report *convert.Report) runView {
	finished := report.FinishedAt
	view := runView{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: &finished,
		DryRun:     report.DryRun,
		Counts:     newCountsView(report.Counts),
	}
	for _, result := range report.Results {
		w := workoutView{
			Position:   result.Position,
			Name:       result.Label,
			Source:     result.Source,
			Status:     string(result.Status),
			OutputPath: result.OutputPath,
			Intervals:  result.Intervals,
			Seconds:    result.Seconds,
		}
		if result.Err != nil {
			w.Message = result.Err.Error()
		}
		for _, rowErr := range result.RowErrors {
			w.Rows = append(w.Rows, rowErrorView{Row: rowErr.Index, Text: rowErr.Text, Message: rowErr.Err.Error()})
		}
		view.Workouts = append(view.Workouts, w)
	}
	return view
}

func newRunView(run history.Run, workouts []history.Workout) runView {
	view := runView{
		ID:         run.ID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		DryRun:     run.DryRun,
		ExportDir:  run.ExportDir,
		Sources:    run.Sources,
		Counts:     newCountsView(run.Counts),
	}
	for _, w := range workouts {
		item := workoutView{
			Position:   w.Position,
			Name:       w.Name,
			Source:     w.Source,
			Status:     string(w.Status),
			OutputPath: w.OutputPath,
			Intervals:  w.Intervals,
			Seconds:    w.Seconds,
			Message:    w.Message,
		}
		for _, diag := range w.Diagnostics {
			if diag.RowIndex < 0 {
				continue
			}
			item.Rows = append(item.Rows, rowErrorView{Row: diag.RowIndex, Text: diag.RowText, Message: diag.Message})
		}
		view.Workouts = append(view.Workouts, item)
	}
	return view
}
