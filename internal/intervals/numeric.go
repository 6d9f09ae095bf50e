package intervals

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alexshpunt/zwift-workouts-parser/internal/workout"
)

var (
	errNoDigits   = errors.New("no digits")
	errNoTimeUnit = errors.New("no hr, min or sec marker")
)

// durationUnits are scanned left to right; each marker consumes the text before it.
var durationUnits = []struct {
	marker  string
	seconds int
}{
	{marker: "hr", seconds: 3600},
	{marker: "min", seconds: 60},
	{marker: "sec", seconds: 1},
}

// ParseDuration converts text such as "1hr 30min 10sec" to seconds.
// Text without any unit marker yields 0 and no error.
func ParseDuration(text string) (int, error) {
	return parseDuration(text, false)
}

func parseDuration(text string, strict bool) (int, error) {
	rest := text
	total := 0
	matched := false
	for _, unit := range durationUnits {
		before, after, found := strings.Cut(rest, unit.marker)
		if !found {
			continue
		}
		matched = true
		value, err := digitsValue(before)
		if err != nil {
			return 0, &NumericFormatError{Field: "duration", Text: text, Err: err}
		}
		total += value * unit.seconds
		rest = after
	}
	if !matched && strict {
		return 0, &NumericFormatError{Field: "duration", Text: text, Err: errNoTimeUnit}
	}
	return total, nil
}

// digitsValue keeps only the digits of s and reads them as one integer.
func digitsValue(s string) (int, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, errNoDigits
	}
	return strconv.Atoi(b.String())
}

// ParsePower converts "95%", "95% FTP" or a bare "95" to an FTP fraction (0.95).
//
// Watt values ("200W") are divided by 100 as well, so 200W reads as 2.0.
// Existing workout files depend on that reading.
func ParsePower(text string) (float64, error) {
	value := text
	if before, _, found := strings.Cut(value, "%"); found {
		value = before
	} else if before, _, found := strings.Cut(value, "W"); found {
		value = before
	}
	value = strings.TrimSpace(value)
	power, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &NumericFormatError{Field: "power", Text: text, Err: unwrapNumError(err)}
	}
	return power / 100, nil
}

// ParseCadence extracts a leading "<n>rpm" clause and returns the remaining
// text. A "rpm," marker swallows its comma so composite rows split cleanly.
// Dual values ("85/95rpm") average to their mean. Without a marker the
// cadence is unset and text is returned unchanged.
func ParseCadence(text string) (workout.Cadence, string, error) {
	marker := "rpm"
	if strings.Contains(text, "rpm,") {
		marker = "rpm,"
	}
	before, after, found := strings.Cut(text, marker)
	if !found {
		return workout.NoCadence(), text, nil
	}

	value := strings.TrimSpace(before)
	if low, high, dual := strings.Cut(value, "/"); dual {
		lo, err := strconv.Atoi(strings.TrimSpace(low))
		if err != nil {
			return workout.NoCadence(), text, &NumericFormatError{Field: "cadence", Text: text, Err: unwrapNumError(err)}
		}
		hi, err := strconv.Atoi(strings.TrimSpace(high))
		if err != nil {
			return workout.NoCadence(), text, &NumericFormatError{Field: "cadence", Text: text, Err: unwrapNumError(err)}
		}
		return workout.RPM(float64(lo+hi) / 2), after, nil
	}

	rpm, err := strconv.Atoi(value)
	if err != nil {
		return workout.NoCadence(), text, &NumericFormatError{Field: "cadence", Text: text, Err: unwrapNumError(err)}
	}
	return workout.RPM(float64(rpm)), after, nil
}

// unwrapNumError drops strconv's echo of the input, which the caller already reports.
func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
