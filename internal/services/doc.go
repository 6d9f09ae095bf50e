// Package services defines shared utilities consumed by the conversion driver
// and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and workout names for
//     logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent history statuses (skipped vs failed).
//
// Use these helpers when wiring new conversion steps so error handling and
// observability stay uniform across a run.
package services
