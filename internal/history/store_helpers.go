package history

import (
	"errors"
	"strings"
	"time"
)

const (
	sourceSeparator = "\n"
	// timeLayout is fixed width so stored timestamps sort chronologically as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func joinSources(sources []string) string {
	return strings.Join(sources, sourceSeparator)
}

func splitSources(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, sourceSeparator)
}
