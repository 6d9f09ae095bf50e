// Package workout defines the structured representation of a parsed training
// workout.
//
// A Workout is an ordered ride timeline of Interval values. Interval is a
// closed set of four shapes (SteadyState, RangedInterval, RepeatSet and
// FreeRide); code that needs per-shape behaviour switches over the concrete
// types. File wraps a Workout with the metadata the training application
// expects (author, name, description, sport type, tags).
//
// Every value in this package is built once by the parser and treated as
// immutable afterwards, so workouts can be shared freely between goroutines.
package workout
