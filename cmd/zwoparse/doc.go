// Package main hosts the zwoparse CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into batch conversions of
// workout manifests, one-off row parsing, history queries against the run
// ledger, preflight checks, and configuration scaffolding. Configuration is
// resolved once per invocation and shared by every subcommand.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through dedicated commands or flags.
package main
