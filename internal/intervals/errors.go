package intervals

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInterval marks rows missing the separator their variant requires.
	ErrMalformedInterval = errors.New("malformed interval")
	// ErrNumericFormat marks numeric fields that hold no usable number.
	ErrNumericFormat = errors.New("numeric format error")
)

// MalformedIntervalError reports a row that lacks the separator its
// classified variant requires.
type MalformedIntervalError struct {
	Text   string
	Index  int // zero-based row index, -1 when unknown; RowError reports it
	Reason string
}

func (e *MalformedIntervalError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s %q", ErrMalformedInterval, e.Text)
	}
	return fmt.Sprintf("%s %q: %s", ErrMalformedInterval, e.Text, e.Reason)
}

// Is matches ErrMalformedInterval.
func (e *MalformedIntervalError) Is(target error) bool {
	return target == ErrMalformedInterval
}

func malformed(text, reason string) error {
	return &MalformedIntervalError{Text: text, Index: -1, Reason: reason}
}

// NumericFormatError reports a numeric field with no parseable value.
type NumericFormatError struct {
	Field string
	Text  string
	Err   error
}

func (e *NumericFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Text)
}

func (e *NumericFormatError) Unwrap() error { return e.Err }

// Is matches ErrNumericFormat.
func (e *NumericFormatError) Is(target error) bool {
	return target == ErrNumericFormat
}

// RowError ties a parse failure to the row it came from.
type RowError struct {
	Index int // zero-based, also in Error output
	Text  string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d %q: %v", e.Index, e.Text, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// RowErrors aggregates every failing row of one workout, in row order.
type RowErrors []*RowError

func (e RowErrors) Error() string {
	switch len(e) {
	case 0:
		return "no row errors"
	case 1:
		return e[0].Error()
	}
	parts := make([]string, 0, len(e))
	for _, rowErr := range e {
		parts = append(parts, rowErr.Error())
	}
	return fmt.Sprintf("%d rows failed: %s", len(e), strings.Join(parts, "; "))
}

// Unwrap exposes the individual row errors to errors.Is and errors.As.
func (e RowErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, rowErr := range e {
		errs = append(errs, rowErr)
	}
	return errs
}
