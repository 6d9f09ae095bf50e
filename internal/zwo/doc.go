// Package zwo renders workout files in the Zwift workout (.zwo) XML format.
//
// Output is deterministic: child elements of workout_file appear as author,
// name, description, sport_type, tags and workout; interval attributes follow
// a fixed order per element; numbers are plain decimals. Interval elements are
// self-closing and the document carries no XML declaration.
package zwo
