package intervals

import (
	"strconv"
	"strings"

	"github.com/alexshpunt/zwift-workouts-parser/internal/workout"
)

// ParseSteadyState parses "<duration> @ [<cadence>rpm[,]] <power>".
func ParseSteadyState(raw string) (workout.SteadyState, error) {
	return parseSteadyState(raw, false)
}

func parseSteadyState(raw string, strict bool) (workout.SteadyState, error) {
	durationPart, rest, found := strings.Cut(raw, "@")
	if !found {
		return workout.SteadyState{}, malformed(raw, `missing "@" separator`)
	}
	duration, err := parseDuration(strings.TrimSpace(durationPart), strict)
	if err != nil {
		return workout.SteadyState{}, err
	}
	cadence, rest, err := ParseCadence(strings.TrimSpace(rest))
	if err != nil {
		return workout.SteadyState{}, err
	}
	power, err := ParsePower(rest)
	if err != nil {
		return workout.SteadyState{}, err
	}
	return workout.SteadyState{Duration: duration, Power: power, Cadence: cadence}, nil
}

// ParseRangedInterval parses "<duration> [@ <cadence>rpm] from <power> to <power>".
func ParseRangedInterval(raw string) (workout.RangedInterval, error) {
	return parseRangedInterval(raw, false)
}

func parseRangedInterval(raw string, strict bool) (workout.RangedInterval, error) {
	durationPart, rest, found := strings.Cut(raw, "from")
	if !found {
		return workout.RangedInterval{}, malformed(raw, `missing "from"`)
	}

	cadence := workout.NoCadence()
	if head, clause, hasCadence := strings.Cut(durationPart, "@"); hasCadence {
		var err error
		cadence, _, err = ParseCadence(strings.TrimSpace(clause))
		if err != nil {
			return workout.RangedInterval{}, err
		}
		durationPart = head
	}
	duration, err := parseDuration(strings.TrimSpace(durationPart), strict)
	if err != nil {
		return workout.RangedInterval{}, err
	}

	fromText, toText, found := strings.Cut(rest, "to")
	if !found {
		return workout.RangedInterval{}, malformed(raw, `missing "to"`)
	}
	from, err := ParsePower(fromText)
	if err != nil {
		return workout.RangedInterval{}, err
	}
	to, err := ParsePower(toText)
	if err != nil {
		return workout.RangedInterval{}, err
	}
	return workout.RangedInterval{Duration: duration, From: from, To: to, Cadence: cadence}, nil
}

// ParseRepeatSet parses "<count>x <steady state>, <steady state>".
func ParseRepeatSet(raw string) (workout.RepeatSet, error) {
	return parseRepeatSet(raw, false)
}

func parseRepeatSet(raw string, strict bool) (workout.RepeatSet, error) {
	countText, body, found := strings.Cut(raw, "x")
	if !found {
		return workout.RepeatSet{}, malformed(raw, `missing "x" repeat marker`)
	}
	repeat, err := strconv.Atoi(strings.TrimSpace(countText))
	if err != nil {
		return workout.RepeatSet{}, &NumericFormatError{Field: "repeat count", Text: countText, Err: unwrapNumError(err)}
	}

	parts := strings.Split(foldCadenceComma(body), ",")
	if len(parts) != 2 {
		return workout.RepeatSet{}, malformed(raw, "expected exactly one on/off pair")
	}
	on, err := parseSteadyState(strings.TrimSpace(parts[0]), strict)
	if err != nil {
		return workout.RepeatSet{}, err
	}
	off, err := parseSteadyState(strings.TrimSpace(parts[1]), strict)
	if err != nil {
		return workout.RepeatSet{}, err
	}
	return workout.RepeatSet{Repeat: repeat, On: on, Off: off}, nil
}

// ParseFreeRide parses "<duration> [@ <cadence>rpm] free ride".
func ParseFreeRide(raw string) (workout.FreeRide, error) {
	return parseFreeRide(raw, false)
}

func parseFreeRide(raw string, strict bool) (workout.FreeRide, error) {
	durationPart, _, found := strings.Cut(raw, "free ride")
	if !found {
		return workout.FreeRide{}, malformed(raw, `missing "free ride"`)
	}

	cadence := workout.NoCadence()
	if head, clause, hasCadence := strings.Cut(durationPart, "@"); hasCadence {
		var err error
		cadence, _, err = ParseCadence(strings.TrimSpace(clause))
		if err != nil {
			return workout.FreeRide{}, err
		}
		durationPart = head
	}
	duration, err := parseDuration(strings.TrimSpace(durationPart), strict)
	if err != nil {
		return workout.FreeRide{}, err
	}
	return workout.FreeRide{Duration: duration, Cadence: cadence, FlatRoad: true}, nil
}
