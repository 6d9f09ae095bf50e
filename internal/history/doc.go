// Package history persists conversion runs in SQLite.
//
// Each run records the manifests it read, one row per workout outcome, and
// one diagnostic per skipped row or workout, so `zwoparse history` can show
// what a past run wrote and why anything was left out.
//
// The database is a local ledger rather than an archive. Schema changes bump
// schemaVersion in schema.go; users delete the database to adopt the new
// schema.
package history
