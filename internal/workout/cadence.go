package workout

import "strconv"

// Cadence is an optional target cadence in revolutions per minute.
// The zero value means the row did not specify one.
type Cadence struct {
	rpm float64
	set bool
}

// RPM returns a cadence set to the given value.
func RPM(value float64) Cadence {
	return Cadence{rpm: value, set: true}
}

// NoCadence returns an unspecified cadence.
func NoCadence() Cadence {
	return Cadence{}
}

// Value returns the cadence and whether it was specified.
func (c Cadence) Value() (float64, bool) {
	return c.rpm, c.set
}

// IsSet reports whether the cadence was specified.
func (c Cadence) IsSet() bool {
	return c.set
}

// String renders the cadence for diagnostics; unspecified cadences print as "-".
func (c Cadence) String() string {
	if !c.set {
		return "-"
	}
	return strconv.FormatFloat(c.rpm, 'f', -1, 64) + "rpm"
}
