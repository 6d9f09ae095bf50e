package workout

import "fmt"

// Interval is one segment of the ride timeline. The set of implementations
// is closed: SteadyState, RangedInterval, RepeatSet and FreeRide.
type Interval interface {
	// Seconds returns the time the interval occupies on the timeline.
	Seconds() int
	isInterval()
}

// SteadyState holds a constant power target for a fixed duration.
type SteadyState struct {
	Duration int     // seconds
	Power    float64 // fraction of FTP
	Cadence  Cadence
}

// Kind distinguishes the two directions of a RangedInterval.
type Kind int

const (
	// Cooldown ramps power down (or holds it level).
	Cooldown Kind = iota
	// Warmup ramps power up.
	Warmup
)

func (k Kind) String() string {
	if k == Warmup {
		return "Warmup"
	}
	return "Cooldown"
}

// RangedInterval ramps power linearly from From to To.
type RangedInterval struct {
	Duration int
	From     float64
	To       float64
	Cadence  Cadence
}

// Kind is derived from the power endpoints: Warmup iff From < To.
func (r RangedInterval) Kind() Kind {
	if r.From < r.To {
		return Warmup
	}
	return Cooldown
}

// RepeatSet repeats an on/off pair of steady efforts.
type RepeatSet struct {
	Repeat int
	On     SteadyState
	Off    SteadyState
}

// FreeRide is an unconstrained segment with no power target.
type FreeRide struct {
	Duration int
	Cadence  Cadence
	FlatRoad bool
}

func (s SteadyState) Seconds() int    { return s.Duration }
func (r RangedInterval) Seconds() int { return r.Duration }
func (f FreeRide) Seconds() int       { return f.Duration }

func (r RepeatSet) Seconds() int {
	return r.Repeat * (r.On.Duration + r.Off.Duration)
}

func (SteadyState) isInterval()    {}
func (RangedInterval) isInterval() {}
func (RepeatSet) isInterval()      {}
func (FreeRide) isInterval()       {}

func (s SteadyState) String() string {
	return fmt.Sprintf("SteadyState(duration=%d power=%g cadence=%s)", s.Duration, s.Power, s.Cadence)
}

func (r RangedInterval) String() string {
	return fmt.Sprintf("%s(duration=%d from=%g to=%g cadence=%s)", r.Kind(), r.Duration, r.From, r.To, r.Cadence)
}

func (r RepeatSet) String() string {
	return fmt.Sprintf("IntervalsT(%dx %s, %s)", r.Repeat, r.On, r.Off)
}

func (f FreeRide) String() string {
	return fmt.Sprintf("FreeRide(duration=%d cadence=%s flat_road=%t)", f.Duration, f.Cadence, f.FlatRoad)
}
