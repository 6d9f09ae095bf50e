package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexshpunt/zwift-workouts-parser/internal/intervals"
	"github.com/alexshpunt/zwift-workouts-parser/internal/manifest"
	"github.com/alexshpunt/zwift-workouts-parser/internal/workout"
	"github.com/alexshpunt/zwift-workouts-parser/internal/zwo"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var (
		asXML  bool
		strict bool
		name   string
		author string
	)

	cmd := &cobra.Command{
		Use:   "parse [ROW...]",
		Short: "Show how interval rows are classified and serialized",
		Long: `Parse classifies each row, parses it, and prints the resulting interval and
its .zwo element. With no arguments rows are read from stdin, one per line.
With --xml the rows are assembled into a complete workout document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := args
			if len(rows) == 0 {
				entries, err := manifest.Read(cmd.InOrStdin(), manifest.FormatText, "stdin")
				if err != nil {
					return fmt.Errorf("read rows: %w", err)
				}
				if len(entries) > 0 {
					rows = entries[0].Rows
				}
			}
			if len(rows) == 0 {
				return errors.New("no interval rows given")
			}

			opts := intervals.Options{
				StrictDurations: cfg.Parsing.StrictDurations,
				Workers:         cfg.Parsing.Workers,
			}
			if cmd.Flags().Changed("strict-durations") {
				opts.StrictDurations = strict
			}
			parser := intervals.New(opts)

			if asXML {
				fileOpts := []workout.FileOption{
					workout.WithAuthor(cfg.Workout.Author),
					workout.WithName(cfg.Workout.Name),
					workout.WithDescription(cfg.Workout.Description),
					workout.WithSportType(cfg.Workout.SportType),
					workout.WithName(name),
					workout.WithAuthor(author),
				}
				return printWorkoutXML(cmd, parser, rows, fileOpts)
			}
			return printParseTable(cmd, parser, rows)
		},
	}

	cmd.Flags().BoolVar(&asXML, "xml", false, "Print a complete .zwo document")
	cmd.Flags().BoolVar(&strict, "strict-durations", false, "Reject durations without an hr/min/sec marker")
	cmd.Flags().StringVar(&name, "name", "", "Workout name for --xml")
	cmd.Flags().StringVar(&author, "author", "", "Workout author for --xml")
	return cmd
}

func printParseTable(cmd *cobra.Command, parser *intervals.Parser, rows []string) error {
	tableRows := make([][]string, 0, len(rows))
	failures := 0
	for i, row := range rows {
		line := []string{fmt.Sprintf("%d", i), row, ruleName(row)}
		interval, err := parser.ParseRow(row)
		if err != nil {
			failures++
			line = append(line, "error: "+err.Error(), "")
			tableRows = append(tableRows, line)
			continue
		}
		element, err := zwo.MarshalInterval(interval)
		if err != nil {
			failures++
			line = append(line, fmt.Sprint(interval), "error: "+err.Error())
			tableRows = append(tableRows, line)
			continue
		}
		tableRows = append(tableRows, append(line, fmt.Sprint(interval), element))
	}

	table := tableSpec{
		headers: []string{"#", "Row", "Rule", "Interval", "Element"},
		aligns:  []columnAlignment{alignRight},
		rows:    tableRows,
	}
	fmt.Fprintln(cmd.OutOrStdout(), table.render())
	if failures > 0 {
		return fmt.Errorf("%d of %d rows failed to parse", failures, len(rows))
	}
	return nil
}

func printWorkoutXML(cmd *cobra.Command, parser *intervals.Parser, rows []string, opts []workout.FileOption) error {
	w, err := parser.FromRows(rows)
	var rowErrs intervals.RowErrors
	if err != nil && !errors.As(err, &rowErrs) {
		return err
	}
	for _, rowErr := range rowErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", rowErr)
	}
	if w.Len() == 0 {
		return errors.New("no rows parsed; nothing to serialize")
	}

	out := cmd.OutOrStdout()
	if err := zwo.Encode(out, workout.NewFile(w, opts...)); err != nil {
		return fmt.Errorf("encode workout: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

// ruleName reports which classification rule claims raw.
func ruleName(raw string) string {
	for _, rule := range intervals.Rules() {
		if rule.Match(raw) {
			return rule.Name
		}
	}
	return ""
}
