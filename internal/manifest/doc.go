// Package manifest reads workout descriptions into Entry values.
//
// An entry carries the metadata of one workout page (breadcrumb directory,
// name, author, description, sport-type tokens, tags) plus its interval rows
// as plain text. Three file formats are accepted: TOML and YAML documents with
// a list of workouts, and plain-text files holding the rows of a single
// workout, one per line.
package manifest
