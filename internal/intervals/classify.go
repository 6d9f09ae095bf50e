package intervals

import "strings"

// Variant names the interval form a row is parsed as.
type Variant int

const (
	VariantSteadyState Variant = iota
	VariantRangedInterval
	VariantRepeatSet
	VariantFreeRide
)

func (v Variant) String() string {
	switch v {
	case VariantSteadyState:
		return "SteadyState"
	case VariantRangedInterval:
		return "RangedInterval"
	case VariantRepeatSet:
		return "RepeatSet"
	case VariantFreeRide:
		return "FreeRide"
	default:
		return "Unknown"
	}
}

// Rule is one entry of the classification table.
type Rule struct {
	Name    string
	Variant Variant
	Match   func(raw string) bool
}

// rules is evaluated top to bottom and the first match wins. The last rule
// always matches.
var rules = []Rule{
	{
		Name:    "free ride",
		Variant: VariantFreeRide,
		Match: func(raw string) bool {
			return strings.Contains(raw, "free ride")
		},
	},
	{
		Name:    "from/to range",
		Variant: VariantRangedInterval,
		Match: func(raw string) bool {
			return strings.Contains(raw, "from") && strings.Contains(raw, "to")
		},
	},
	{
		Name:    "on/off pair",
		Variant: VariantRepeatSet,
		Match: func(raw string) bool {
			// "100rpm, 95%" is a cadence clause, not a pair separator.
			return strings.Contains(foldCadenceComma(raw), ",")
		},
	},
	{
		Name:    "steady state",
		Variant: VariantSteadyState,
		Match:   func(string) bool { return true },
	},
}

// Rules returns a copy of the classification table in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify picks the variant a raw row is parsed as.
func Classify(raw string) Variant {
	for _, rule := range rules {
		if rule.Match(raw) {
			return rule.Variant
		}
	}
	return VariantSteadyState
}

func foldCadenceComma(raw string) string {
	return strings.ReplaceAll(raw, "rpm,", "rpm")
}
