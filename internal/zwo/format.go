package zwo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatPower renders an FTP fraction as a plain decimal that always carries a
// fractional part: 1 -> "1.0", 0.55 -> "0.55".
func FormatPower(value float64) (string, error) {
	if err := checkFinite("power", value); err != nil {
		return "", err
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}

// FormatCadence renders whole cadences as integers ("90") and averaged ones
// with their fraction ("87.5").
func FormatCadence(value float64) (string, error) {
	if err := checkFinite("cadence", value); err != nil {
		return "", err
	}
	if value < 0 {
		return "", fmt.Errorf("cadence %v: %w", value, ErrInvalidValue)
	}
	if value == math.Trunc(value) && value < 1<<53 {
		return strconv.FormatInt(int64(value), 10), nil
	}
	return strconv.FormatFloat(value, 'f', -1, 64), nil
}

func formatFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func checkFinite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s %v: %w", field, value, ErrInvalidValue)
	}
	return nil
}
