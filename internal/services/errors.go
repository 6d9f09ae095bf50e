package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexshpunt/zwift-workouts-parser/internal/history"
)

var (
	ErrInput            = errors.New("input error")
	ErrOutput           = errors.New("output error")
	ErrParse            = errors.New("parse error")
	ErrUnsupportedSport = errors.New("unsupported sport")
	ErrConfiguration    = errors.New("configuration error")
	ErrTransient        = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a workout error to the status recorded in the run history.
// Workouts that were never convertible are skipped; anything else failed.
func FailureStatus(err error) history.Status {
	switch {
	case errors.Is(err, ErrUnsupportedSport), errors.Is(err, ErrParse):
		return history.StatusSkipped
	default:
		return history.StatusFailed
	}
}

// IsFatal reports whether err should stop a whole run instead of a single workout.
func IsFatal(err error) bool {
	return errors.Is(err, ErrOutput) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "conversion failure"
	}
	return strings.Join(parts, ": ")
}
