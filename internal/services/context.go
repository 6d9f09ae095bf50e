package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	stageKey    contextKey = "stage"
	workoutKey  contextKey = "workout"
	positionKey contextKey = "position"
)

// WithRunID annotates context with the conversion run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the conversion stage name (load, parse, encode, write).
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithWorkout annotates context with the workout being converted and its
// position in the run.
func WithWorkout(ctx context.Context, name string, position int) context.Context {
	ctx = context.WithValue(ctx, positionKey, position)
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, workoutKey, name)
}

// WorkoutFromContext returns the workout name if present.
func WorkoutFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(workoutKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// PositionFromContext returns the workout position if present.
func PositionFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(positionKey).(int)
	return v, ok
}
