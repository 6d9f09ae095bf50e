package logging

import (
	"context"
	"log/slog"

	"github.com/alexshpunt/zwift-workouts-parser/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for conversion run identifiers.
	FieldRunID = "run_id"
	// FieldStage is the standardized structured logging key for conversion stages.
	FieldStage = "stage"
	// FieldWorkout is the standardized structured logging key for workout names.
	FieldWorkout = "workout"
	// FieldPosition is the zero-based position of a workout within a run.
	FieldPosition = "position"
	// FieldRowIndex is the zero-based index of an interval row within a workout.
	FieldRowIndex = "row_index"
	FieldRow      = "row"
	FieldPath     = "path"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if name, ok := services.WorkoutFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldWorkout, name))
	}
	if pos, ok := services.PositionFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldPosition, pos))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
