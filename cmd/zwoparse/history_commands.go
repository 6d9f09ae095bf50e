package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					views := make([]runView, 0, len(runs))
					for _, run := range runs {
						views = append(views, newRunView(run, nil))
					}
					return writeJSON(cmd, views)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				fmt.Fprintln(out, runsTable(runs))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 lists all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the workouts and diagnostics of one run",
		Long:  "RUN_ID may be any unique prefix of a run id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				workouts, err := store.Workouts(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, newRunView(*run, workouts))
				}
				out := cmd.OutOrStdout()
				printRunDetail(out, *run, workouts, shouldColorize(out))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must be zero or more, got %d", keep)
			}
			return ctx.withStore(func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs (kept %d most recent)\n", removed, keep)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 50, "Number of recent runs to keep")
	return cmd
}

func runsTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			formatTimestamp(run.StartedAt),
			fmt.Sprintf("%d", run.Counts.Workouts),
			fmt.Sprintf("%d", run.Counts.Converted),
			fmt.Sprintf("%d", run.Counts.Partial),
			fmt.Sprintf("%d", run.Counts.Skipped),
			fmt.Sprintf("%d", run.Counts.Failed),
			strings.Join(run.Sources, ", "),
		})
	}
	return tableSpec{
		headers: []string{"Run", "Started", "Workouts", "Converted", "Partial", "Skipped", "Failed", "Sources"},
		aligns: []columnAlignment{
			alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft,
		},
		rows: rows,
	}.render()
}

func printRunDetail(out io.Writer, run history.Run, workouts []history.Workout, colorize bool) {
	for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, formatTimestamp(run.StartedAt), colorize))
	if run.Finished() {
		fmt.Fprintln(out, renderStatusLine("Finished", statusInfo, formatTimestamp(*run.FinishedAt), colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Finished", statusWarn, "run did not complete", colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Export directory", statusInfo, run.ExportDir, colorize))
	fmt.Fprintln(out, renderStatusLine("Dry run", statusInfo, yesNo(run.DryRun), colorize))
	fmt.Fprintln(out, renderStatusLine("Summary", countsStatusKind(run.Counts), countsSummary(run.Counts), colorize))

	if len(workouts) == 0 {
		return
	}
	fmt.Fprintln(out)
	rows := make([][]string, 0, len(workouts))
	var diagRows [][]string
	for _, w := range workouts {
		detail := w.OutputPath
		if w.Message != "" {
			detail = w.Message
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", w.Position+1),
			w.Name,
			string(w.Status),
			fmt.Sprintf("%d", w.Intervals),
			formatSeconds(w.Seconds),
			detail,
		})
		for _, diag := range w.Diagnostics {
			if diag.RowIndex < 0 {
				continue
			}
			diagRows = append(diagRows, []string{
				w.Name,
				fmt.Sprintf("%d", diag.RowIndex),
				diag.RowText,
				diag.Message,
			})
		}
	}
	fmt.Fprintln(out, tableSpec{
		headers: []string{"#", "Workout", "Status", "Intervals", "Duration", "Output"},
		aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		rows:    rows,
	}.render())

	if len(diagRows) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, tableSpec{
		headers: []string{"Workout", "Row", "Text", "Problem"},
		aligns:  []columnAlignment{alignLeft, alignRight},
		rows:    diagRows,
	}.render())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
