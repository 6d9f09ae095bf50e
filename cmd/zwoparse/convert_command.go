package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexshpunt/zwift-workouts-parser/internal/config"
	"github.com/alexshpunt/zwift-workouts-parser/internal/convert"
	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
	"github.com/alexshpunt/zwift-workouts-parser/internal/logging"
	"github.com/alexshpunt/zwift-workouts-parser/internal/output"
	"github.com/alexshpunt/zwift-workouts-parser/internal/preflight"
	"github.com/alexshpunt/zwift-workouts-parser/internal/services"
)

type convertFlags struct {
	outputDir       string
	strictDurations bool
	dropPartial     bool
	allSports       bool
	workers         int
	dryRun          bool
	noHistory       bool
	jsonOutput      bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert MANIFEST...",
		Short: "Convert workout manifests into .zwo files",
		Long: `Convert reads TOML, YAML, or plain-text manifests and writes one .zwo file
per workout under the export directory. Rows that fail to parse are reported
and the rest of the workout is still written, unless --drop-partial is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyConvertFlags(cmd, *base, flags)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Export directory (overrides paths.export_dir)")
	cmd.Flags().BoolVar(&flags.strictDurations, "strict-durations", false, "Reject durations without an hr/min/sec marker")
	cmd.Flags().BoolVar(&flags.dropPartial, "drop-partial", false, "Skip workouts where any row fails to parse")
	cmd.Flags().BoolVar(&flags.allSports, "all-sports", false, "Convert workouts whose sport type is not bike")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Concurrent workouts (0 uses GOMAXPROCS)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Parse and report without writing files or history")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record this run in the history ledger")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the run report as JSON")
	return cmd
}

// applyConvertFlags layers explicitly set flags over a copy of the loaded config.
func applyConvertFlags(cmd *cobra.Command, cfg config.Config, flags convertFlags) (*config.Config, error) {
	set := cmd.Flags()
	if dir := strings.TrimSpace(flags.outputDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Paths.ExportDir = expanded
	}
	if set.Changed("strict-durations") {
		cfg.Parsing.StrictDurations = flags.strictDurations
	}
	if set.Changed("drop-partial") {
		cfg.Parsing.DropPartialWorkouts = flags.dropPartial
	}
	if set.Changed("all-sports") {
		cfg.Parsing.BikeOnly = !flags.allSports
	}
	if set.Changed("workers") {
		cfg.Parsing.Workers = flags.workers
	}
	if flags.noHistory || flags.dryRun {
		cfg.History.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runConvert(cmd *cobra.Command, cfg *config.Config, manifests []string, flags convertFlags) error {
	if !flags.dryRun {
		if err := cfg.EnsureDirectories(); err != nil {
			return fmt.Errorf("ensure directories: %w", err)
		}
	}
	if err := checkConvertInputs(cfg, manifests, flags.dryRun); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	sink := output.NewDirSink(cfg.Paths.ExportDir, output.WithDryRun(flags.dryRun))
	if err := sink.Open(); err != nil {
		return services.Wrap(services.ErrOutput, "output", "open export directory", cfg.Paths.ExportDir, err)
	}
	defer sink.Close()

	var recorder convert.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	opts := convert.OptionsFromConfig(cfg)
	opts.DryRun = flags.dryRun
	report, runErr := convert.New(opts, sink, recorder, logger).Run(cmd.Context(), manifests)
	if report != nil {
		out := cmd.OutOrStdout()
		if flags.jsonOutput {
			if err := writeJSON(cmd, newReportView(report)); err != nil {
				return err
			}
		} else {
			printConvertReport(out, report, shouldColorize(out))
		}
	}
	return runErr
}

// checkConvertInputs runs preflight. Dry runs never touch the export or state
// directories, so only the manifests are checked.
func checkConvertInputs(cfg *config.Config, manifests []string, dryRun bool) error {
	var results []preflight.Result
	if dryRun {
		for _, path := range manifests {
			results = append(results, preflight.CheckReadable("Input", path))
		}
	} else {
		results = preflight.RunAll(cfg, manifests...)
	}
	failed := preflight.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, r := range failed {
		errs = append(errs, fmt.Errorf("%s: %s", strings.ToLower(r.Name), r.Detail))
	}
	return services.Wrap(services.ErrInput, "preflight", "check inputs", "", errors.Join(errs...))
}

func printConvertReport(out io.Writer, report *convert.Report, colorize bool) {
	rows := make([][]string, 0, len(report.Results))
	var intervals, seconds int
	for _, result := range report.Results {
		intervals += result.Intervals
		seconds += result.Seconds
		rows = append(rows, []string{
			fmt.Sprintf("%d", result.Position+1),
			result.Label,
			string(result.Status),
			fmt.Sprintf("%d", result.Intervals),
			formatSeconds(result.Seconds),
			resultDetail(result),
		})
	}
	table := tableSpec{
		headers: []string{"#", "Workout", "Status", "Intervals", "Duration", "Output"},
		aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		rows:    rows,
		footer:  []string{"", "Total", "", fmt.Sprintf("%d", intervals), formatSeconds(seconds), ""},
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, table.render())
	}

	fmt.Fprintln(out, renderStatusLine("Run", statusInfo, report.RunID, colorize))
	if report.DryRun {
		fmt.Fprintln(out, renderStatusLine("Mode", statusInfo, "dry run, nothing written", colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Summary", countsStatusKind(report.Counts), countsSummary(report.Counts), colorize))
	fmt.Fprintln(out, renderStatusLine("Elapsed", statusInfo, report.Elapsed().Round(time.Millisecond).String(), colorize))
}

func resultDetail(result convert.Result) string {
	switch {
	case result.Err != nil:
		return result.Err.Error()
	case len(result.RowErrors) > 0:
		return fmt.Sprintf("%s (%d rows failed)", result.OutputPath, len(result.RowErrors))
	default:
		return result.OutputPath
	}
}

// formatSeconds renders a workout length as m:ss or h:mm:ss.
func formatSeconds(total int) string {
	if total <= 0 {
		return "0:00"
	}
	h, rem := total/3600, total%3600
	m, s := rem/60, rem%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
