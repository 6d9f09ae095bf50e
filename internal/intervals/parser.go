package intervals

import (
	"errors"

	"github.com/sourcegraph/conc/iter"

	"github.com/alexshpunt/zwift-workouts-parser/internal/workout"
)

// Options tunes a Parser.
type Options struct {
	// StrictDurations rejects duration text with no hr/min/sec marker
	// instead of reading it as 0 seconds.
	StrictDurations bool
	// Workers bounds row parsing concurrency. Zero or less uses GOMAXPROCS.
	Workers int
}

// Parser parses interval rows. It holds no mutable state and is safe for
// concurrent use.
type Parser struct {
	opts Options
}

// New returns a parser configured with opts.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// ParseRow classifies raw and parses it with the matching variant parser.
func (p *Parser) ParseRow(raw string) (workout.Interval, error) {
	strict := p.opts.StrictDurations
	var (
		interval workout.Interval
		err      error
	)
	switch Classify(raw) {
	case VariantFreeRide:
		interval, err = parseFreeRide(raw, strict)
	case VariantRangedInterval:
		interval, err = parseRangedInterval(raw, strict)
	case VariantRepeatSet:
		interval, err = parseRepeatSet(raw, strict)
	default:
		interval, err = parseSteadyState(raw, strict)
	}
	if err != nil {
		return nil, err
	}
	return interval, nil
}

type rowResult struct {
	interval workout.Interval
	err      error
}

// FromRows parses rows into a workout. Row i of the input becomes the i-th
// interval among the rows that parsed, whatever order the workers finish in.
// When any row fails, the workout of the surviving rows is returned together
// with a RowErrors value listing every failure in row order.
func (p *Parser) FromRows(rows []string) (workout.Workout, error) {
	mapper := iter.Mapper[string, rowResult]{MaxGoroutines: max(p.opts.Workers, 0)}
	results := mapper.Map(rows, func(row *string) rowResult {
		interval, err := p.ParseRow(*row)
		return rowResult{interval: interval, err: err}
	})

	parsed := make([]workout.Interval, 0, len(results))
	var failures RowErrors
	for i, result := range results {
		if result.err != nil {
			var shape *MalformedIntervalError
			if errors.As(result.err, &shape) {
				shape.Index = i
			}
			failures = append(failures, &RowError{Index: i, Text: rows[i], Err: result.err})
			continue
		}
		parsed = append(parsed, result.interval)
	}

	if len(failures) > 0 {
		return workout.New(parsed...), failures
	}
	return workout.New(parsed...), nil
}

// FromRows parses rows with default options.
func FromRows(rows []string) (workout.Workout, error) {
	return New(Options{}).FromRows(rows)
}

// ParseRow parses one row with default options.
func ParseRow(raw string) (workout.Interval, error) {
	return New(Options{}).ParseRow(raw)
}
