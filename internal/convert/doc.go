// Package convert drives a batch conversion run.
//
// A run takes manifest entries, parses each workout's rows, renders the
// .zwo document, and hands it to a Sink. Workouts are converted concurrently
// but results are reported, logged, and recorded in entry order. A failing
// row is dropped from its workout and reported as a diagnostic; a workout
// that cannot be converted is skipped and the run continues. Only output
// failures stop the run.
package convert
