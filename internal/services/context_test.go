package services_test

import (
	"context"
	"testing"

	"github.com/alexshpunt/zwift-workouts-parser/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "parse")
	ctx = services.WithWorkout(ctx, "Threshold", 3)

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "parse" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if name, ok := services.WorkoutFromContext(ctx); !ok || name != "Threshold" {
		t.Fatalf("unexpected workout: %v %v", name, ok)
	}
	if pos, ok := services.PositionFromContext(ctx); !ok || pos != 3 {
		t.Fatalf("unexpected position: %v %v", pos, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithRunID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.PositionFromContext(ctx); ok {
		t.Fatal("expected no position value")
	}
}
