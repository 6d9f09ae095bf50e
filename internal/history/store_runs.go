package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrRunNotFound is returned when no run matches an id or id prefix.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an id prefix matches several runs.
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

// BeginRun records the start of a conversion run.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("begin run: id is required")
	}
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	if err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, started_at, sources, export_dir, dry_run) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(started),
		joinSources(run.Sources),
		run.ExportDir,
		boolToInt(run.DryRun),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordWorkout stores one workout outcome and its diagnostics atomically.
// The generated id is written back to w.
func (s *Store) RecordWorkout(ctx context.Context, w *Workout) error {
	if w == nil {
		return errors.New("record workout: nil workout")
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin workout tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			`INSERT INTO workouts (
                run_id, position, name, source, status, output_path,
                intervals, seconds, failed_rows, message
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.RunID,
			w.Position,
			w.Name,
			w.Source,
			string(w.Status),
			nullableString(w.OutputPath),
			w.Intervals,
			w.Seconds,
			w.FailedRows,
			nullableString(w.Message),
		)
		if err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}

		for _, diag := range w.Diagnostics {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO diagnostics (workout_id, row_index, row_text, message) VALUES (?, ?, ?, ?)`,
				id, diag.RowIndex, diag.RowText, diag.Message,
			); err != nil {
				return fmt.Errorf("insert diagnostic: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit workout: %w", err)
		}
		w.ID = id
		return nil
	})
}

// FinishRun stores the final tallies of a run.
func (s *Store) FinishRun(ctx context.Context, id string, counts Counts, finishedAt time.Time) error {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`UPDATE runs SET finished_at = ?, workouts = ?, converted = ?, partial = ?, skipped = ?, failed = ?
             WHERE id = ?`,
			formatTime(finishedAt),
			counts.Workouts,
			counts.Converted,
			counts.Partial,
			counts.Skipped,
			counts.Failed,
			id,
		)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

const runColumns = `id, started_at, finished_at, sources, export_dir, dry_run,
    workouts, converted, partial, skipped, failed`

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
		sources     string
		dryRun      int
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&sources,
		&run.ExportDir,
		&dryRun,
		&run.Counts.Workouts,
		&run.Counts.Converted,
		&run.Counts.Partial,
		&run.Counts.Skipped,
		&run.Counts.Failed,
	); err != nil {
		return Run{}, err
	}
	started, err := parseTimeString(startedRaw)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at %q: %w", startedRaw, err)
	}
	run.StartedAt = started
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	run.Sources = splitSources(sources)
	run.DryRun = dryRun != 0
	return run, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun resolves a run by full id or unique id prefix.
func (s *Store) GetRun(ctx context.Context, idOrPrefix string) (*Run, error) {
	ctx = ensureContext(ctx)
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		idOrPrefix, len(idOrPrefix), idOrPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if run.ID == idOrPrefix {
			return &run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%s: %w", idOrPrefix, ErrRunNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%s: %w", idOrPrefix, ErrAmbiguousRun)
	}
}

// Workouts returns the recorded outcomes of a run in conversion order,
// each with its diagnostics.
func (s *Store) Workouts(ctx context.Context, runID string) ([]Workout, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, position, name, source, status, output_path,
                intervals, seconds, failed_rows, message
         FROM workouts WHERE run_id = ? ORDER BY position, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	var (
		workouts []Workout
		index    = map[int64]int{}
	)
	for rows.Next() {
		var (
			w          Workout
			status     string
			outputPath sql.NullString
			message    sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.RunID, &w.Position, &w.Name, &w.Source, &status, &outputPath,
			&w.Intervals, &w.Seconds, &w.FailedRows, &message); err != nil {
			rows.Close()
			return nil, err
		}
		w.Status = Status(status)
		w.OutputPath = outputPath.String
		w.Message = message.String
		index[w.ID] = len(workouts)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(workouts) == 0 {
		return nil, nil
	}

	diagRows, err := s.db.QueryContext(ctx,
		`SELECT d.workout_id, d.row_index, d.row_text, d.message
         FROM diagnostics d JOIN workouts w ON w.id = d.workout_id
         WHERE w.run_id = ? ORDER BY d.workout_id, d.row_index, d.id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	defer diagRows.Close()
	for diagRows.Next() {
		var (
			workoutID int64
			diag      Diagnostic
		)
		if err := diagRows.Scan(&workoutID, &diag.RowIndex, &diag.RowText, &diag.Message); err != nil {
			return nil, err
		}
		if i, ok := index[workoutID]; ok {
			workouts[i].Diagnostics = append(workouts[i].Diagnostics, diag)
		}
	}
	return workouts, diagRows.Err()
}

// Prune deletes all but the keep most recent runs and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	ctx = ensureContext(ctx)
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM runs WHERE id NOT IN (
                SELECT id FROM runs ORDER BY started_at DESC, id LIMIT ?
            )`,
			keep,
		)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return removed, nil
}
