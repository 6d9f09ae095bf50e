package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/stream"

	"github.com/alexshpunt/zwift-workouts-parser/internal/config"
	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
	"github.com/alexshpunt/zwift-workouts-parser/internal/intervals"
	"github.com/alexshpunt/zwift-workouts-parser/internal/logging"
	"github.com/alexshpunt/zwift-workouts-parser/internal/manifest"
	"github.com/alexshpunt/zwift-workouts-parser/internal/services"
	"github.com/alexshpunt/zwift-workouts-parser/internal/workout"
	"github.com/alexshpunt/zwift-workouts-parser/internal/zwo"
)

// Sink receives rendered workout documents.
type Sink interface {
	Write(ctx context.Context, directory, name string, data []byte) (string, error)
}

// Recorder persists run outcomes. *history.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run history.Run) error
	RecordWorkout(ctx context.Context, w *history.Workout) error
	FinishRun(ctx context.Context, id string, counts history.Counts, finishedAt time.Time) error
}

// Defaults fills workout metadata the entry leaves blank.
type Defaults struct {
	Author      string
	Name        string
	Description string
	SportType   string
}

// Options controls conversion policy.
type Options struct {
	Parsing intervals.Options
	// DropPartial skips a workout when any of its rows fails to parse.
	DropPartial bool
	// BikeOnly skips entries whose sport-type tokens name no bike workout.
	BikeOnly bool
	// Workers bounds how many workouts convert at once. Zero or less uses GOMAXPROCS.
	Workers  int
	DryRun   bool
	Defaults Defaults
	// ExportDir is recorded with the run.
	ExportDir string
}

// OptionsFromConfig maps the [parsing] and [workout] config sections.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Parsing: intervals.Options{
			StrictDurations: cfg.Parsing.StrictDurations,
			Workers:         cfg.Parsing.Workers,
		},
		DropPartial: cfg.Parsing.DropPartialWorkouts,
		BikeOnly:    cfg.Parsing.BikeOnly,
		Workers:     cfg.Parsing.Workers,
		Defaults: Defaults{
			Author:      cfg.Workout.Author,
			Name:        cfg.Workout.Name,
			Description: cfg.Workout.Description,
			SportType:   cfg.Workout.SportType,
		},
		ExportDir: cfg.Paths.ExportDir,
	}
}

// Converter runs batches of manifest entries.
type Converter struct {
	opts     Options
	parser   *intervals.Parser
	sink     Sink
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// New builds a converter. recorder may be nil to skip history; it is also
// skipped for dry runs.
func New(opts Options, sink Sink, recorder Recorder, logger *slog.Logger) *Converter {
	return &Converter{
		opts:     opts,
		parser:   intervals.New(opts.Parsing),
		sink:     sink,
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "convert"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// LoadEntries reads every manifest. Any unreadable manifest fails the load.
func LoadEntries(paths []string) ([]manifest.Entry, error) {
	var entries []manifest.Entry
	for _, path := range paths {
		loaded, err := manifest.Load(path)
		if err != nil {
			return nil, services.Wrap(services.ErrInput, "load", "manifest", path, err)
		}
		entries = append(entries, loaded...)
	}
	return entries, nil
}

// Run loads the manifests at paths and converts every entry.
func (c *Converter) Run(ctx context.Context, paths []string) (*Report, error) {
	entries, err := LoadEntries(paths)
	if err != nil {
		return nil, err
	}
	return c.Convert(ctx, entries, paths)
}

// Convert converts entries and returns the per-workout report. The error is
// non-nil only when the run itself could not complete: history could not be
// written or the sink failed.
func (c *Converter) Convert(ctx context.Context, entries []manifest.Entry, sources []string) (*Report, error) {
	if c.sink == nil {
		return nil, services.Wrap(services.ErrConfiguration, "convert", "", "no output sink", nil)
	}
	report := &Report{
		RunID:     c.newID(),
		StartedAt: c.now(),
		DryRun:    c.opts.DryRun,
		Results:   make([]Result, 0, len(entries)),
	}
	ctx = services.WithStage(services.WithRunID(ctx, report.RunID), "convert")
	logger := logging.WithContext(ctx, c.logger)

	recorder := c.recorder
	if c.opts.DryRun {
		recorder = nil
	}
	if recorder != nil {
		if err := recorder.BeginRun(ctx, history.Run{
			ID:        report.RunID,
			StartedAt: report.StartedAt,
			Sources:   sources,
			ExportDir: c.opts.ExportDir,
			DryRun:    c.opts.DryRun,
		}); err != nil {
			return nil, fmt.Errorf("begin run history: %w", err)
		}
	}

	logger.Info("conversion started", logging.Int("workouts", len(entries)), logging.Bool("dry_run", c.opts.DryRun))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var fatal error
	s := stream.New().WithMaxGoroutines(workerCount(c.opts.Workers))
	for i, entry := range entries {
		s.Go(func() stream.Callback {
			pending := c.prepare(runCtx, i, entry)
			return func() {
				// Callbacks run one at a time in entry order, so output paths
				// and their collision suffixes follow the manifest.
				result := c.write(runCtx, pending)
				report.Results = append(report.Results, result)
				report.Counts.Add(result.Status)
				c.logResult(ctx, result)
				if recorder != nil && fatal == nil {
					if err := recorder.RecordWorkout(ctx, result.record(report.RunID)); err != nil {
						fatal = fmt.Errorf("record workout history: %w", err)
						cancel()
					}
				}
				if fatal == nil && services.IsFatal(result.Err) {
					fatal = result.Err
					cancel()
				}
			}
		})
	}
	s.Wait()

	report.FinishedAt = c.now()
	if recorder != nil {
		if err := recorder.FinishRun(ctx, report.RunID, report.Counts, report.FinishedAt); err != nil && fatal == nil {
			fatal = fmt.Errorf("finish run history: %w", err)
		}
	}

	logger.Info("conversion finished",
		logging.Int("converted", report.Counts.Converted),
		logging.Int("partial", report.Counts.Partial),
		logging.Int("skipped", report.Counts.Skipped),
		logging.Int("failed", report.Counts.Failed),
		logging.Duration("elapsed", report.Elapsed()),
	)
	return report, fatal
}

func workerCount(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// pendingWrite is a workout that parsed and encoded. data is nil when the
// result is already final.
type pendingWrite struct {
	result    Result
	directory string
	data      []byte
}

// prepare parses and encodes one entry. It runs on a worker.
func (c *Converter) prepare(ctx context.Context, position int, entry manifest.Entry) pendingWrite {
	result := Result{
		Position: position,
		Label:    entry.Label(),
		Source:   entry.Source,
		Name:     entry.Name,
	}
	fail := func(err error) pendingWrite {
		result.Err = err
		result.Status = services.FailureStatus(err)
		return pendingWrite{result: result}
	}

	if err := ctx.Err(); err != nil {
		return fail(services.Wrap(services.ErrTransient, "convert", "", "run aborted", err))
	}
	if !entry.HasContent() {
		return fail(services.Wrap(services.ErrParse, "filter", "", "entry has no name and no rows", nil))
	}
	if c.opts.BikeOnly && !manifest.IsBikeSport(entry.SportTypes) {
		return fail(services.Wrap(services.ErrUnsupportedSport, "filter", "", fmt.Sprintf("sport types %v are not bike", entry.SportTypes), nil))
	}

	rows, source := entry.NonBlankRows()
	parsed, err := c.parser.FromRows(rows)
	if err != nil {
		var rowErrs intervals.RowErrors
		if !errors.As(err, &rowErrs) {
			return fail(services.Wrap(services.ErrParse, "parse", "rows", "", err))
		}
		result.RowErrors = sourceRowErrors(rowErrs, entry.Rows, source)
	}
	if parsed.Len() == 0 {
		return fail(services.Wrap(services.ErrParse, "parse", "rows", "no intervals parsed", nil))
	}
	if c.opts.DropPartial && len(result.RowErrors) > 0 {
		return fail(services.Wrap(services.ErrParse, "parse", "rows",
			fmt.Sprintf("%d of %d rows failed and partial workouts are dropped", len(result.RowErrors), len(rows)), nil))
	}

	file := c.buildFile(parsed, entry)
	result.Name = file.Name
	result.Intervals = parsed.Len()
	result.Seconds = parsed.TotalDuration()

	data, err := zwo.Marshal(file)
	if err != nil {
		return fail(services.Wrap(services.ErrParse, "encode", "", "", err))
	}
	return pendingWrite{result: result, directory: entry.Directory, data: data}
}

// write hands an encoded workout to the sink. It runs in entry order.
func (c *Converter) write(ctx context.Context, p pendingWrite) Result {
	result := p.result
	if p.data == nil {
		return result
	}
	fail := func(err error) Result {
		result.Err = err
		result.Status = services.FailureStatus(err)
		return result
	}
	if err := ctx.Err(); err != nil {
		return fail(services.Wrap(services.ErrTransient, "convert", "", "run aborted", err))
	}

	path, err := c.sink.Write(ctx, p.directory, result.Name, p.data)
	if err != nil {
		return fail(services.Wrap(services.ErrOutput, "write", "", result.Label, err))
	}
	result.OutputPath = path
	if len(result.RowErrors) > 0 {
		result.Status = history.StatusPartial
	} else {
		result.Status = history.StatusConverted
	}
	return result
}

// sourceRowErrors maps row errors from the filtered rows back to the entry's
// own row indices and untrimmed text.
func sourceRowErrors(rowErrs intervals.RowErrors, raw []string, source []int) intervals.RowErrors {
	mapped := make(intervals.RowErrors, 0, len(rowErrs))
	for _, rowErr := range rowErrs {
		index := source[rowErr.Index]
		var shape *intervals.MalformedIntervalError
		if errors.As(rowErr.Err, &shape) {
			shape.Index = index
		}
		mapped = append(mapped, &intervals.RowError{Index: index, Text: raw[index], Err: rowErr.Err})
	}
	return mapped
}

func (c *Converter) buildFile(w workout.Workout, entry manifest.Entry) workout.File {
	d := c.opts.Defaults
	return workout.NewFile(w,
		workout.WithAuthor(d.Author),
		workout.WithAuthor(manifest.NormalizeAuthor(entry.Author)),
		workout.WithName(d.Name),
		workout.WithName(strings.TrimSpace(entry.Name)),
		workout.WithDescription(d.Description),
		workout.WithDescription(entry.Description),
		workout.WithSportType(d.SportType),
		workout.WithTags(entry.Tags...),
	)
}

func (c *Converter) logResult(ctx context.Context, result Result) {
	logger := logging.WithContext(services.WithWorkout(ctx, result.Label, result.Position), c.logger)
	for _, rowErr := range result.RowErrors {
		logger.Warn("row skipped",
			logging.Int(logging.FieldRowIndex, rowErr.Index),
			logging.String(logging.FieldRow, rowErr.Text),
			logging.Error(rowErr.Err),
		)
	}
	switch result.Status {
	case history.StatusConverted, history.StatusPartial:
		logger.Info("workout written",
			logging.String(logging.FieldPath, result.OutputPath),
			logging.Int("intervals", result.Intervals),
			logging.Int("seconds", result.Seconds),
			logging.String("status", string(result.Status)),
		)
	case history.StatusSkipped:
		logger.Warn("workout skipped", logging.Error(result.Err))
	default:
		logger.Error("workout failed", logging.Error(result.Err))
	}
}
