package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
	"github.com/alexshpunt/zwift-workouts-parser/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// workoutStatusKind maps a workout outcome onto the status palette.
func workoutStatusKind(status history.Status) statusKind {
	switch status {
	case history.StatusConverted:
		return statusOK
	case history.StatusPartial, history.StatusSkipped:
		return statusWarn
	case history.StatusFailed:
		return statusError
	default:
		return statusInfo
	}
}

// countsStatusKind grades a whole run by its worst outcome.
func countsStatusKind(counts history.Counts) statusKind {
	switch {
	case counts.Failed > 0:
		return statusError
	case counts.Partial > 0 || counts.Skipped > 0:
		return statusWarn
	case counts.Workouts == 0:
		return statusInfo
	default:
		return statusOK
	}
}

func countsSummary(counts history.Counts) string {
	return fmt.Sprintf("%d workouts: %d converted, %d partial, %d skipped, %d failed",
		counts.Workouts, counts.Converted, counts.Partial, counts.Skipped, counts.Failed)
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		kind := statusOK
		message := "Ready"
		if !r.Passed {
			kind = statusError
			message = r.Detail
		} else if r.Detail != "" {
			message = r.Detail
		}
		lines = append(lines, renderStatusLine(r.Name, kind, message, colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
