// Package logging assembles structured slog loggers and formatting helpers used
// across the converter.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so conversion code can tag log
// lines with run IDs, stages, and workout names. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
