package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
	"github.com/alexshpunt/zwift-workouts-parser/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrOutput, "write", "rename", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrOutput) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"write", "rename", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "conversion failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	sportErr := services.Wrap(services.ErrUnsupportedSport, "filter", "", "run", nil)
	if status := services.FailureStatus(sportErr); status != history.StatusSkipped {
		t.Fatalf("expected skipped for unsupported sport, got %s", status)
	}

	parseErr := services.Wrap(services.ErrParse, "parse", "rows", "no intervals", nil)
	if status := services.FailureStatus(parseErr); status != history.StatusSkipped {
		t.Fatalf("expected skipped for parse error, got %s", status)
	}

	outputErr := services.Wrap(services.ErrOutput, "write", "", "disk full", errors.New("io"))
	if status := services.FailureStatus(outputErr); status != history.StatusFailed {
		t.Fatalf("expected failed for output error, got %s", status)
	}

	if status := services.FailureStatus(nil); status != history.StatusFailed {
		t.Fatalf("expected failed for nil error, got %s", status)
	}
}

func TestIsFatal(t *testing.T) {
	if !services.IsFatal(services.Wrap(services.ErrOutput, "write", "", "", nil)) {
		t.Fatal("output errors stop the run")
	}
	if services.IsFatal(services.Wrap(services.ErrParse, "parse", "", "", nil)) {
		t.Fatal("parse errors only affect one workout")
	}
}
