package zwo

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexshpunt/zwift-workouts-parser/internal/workout"
)

var (
	// ErrUnsupportedInterval is returned for intervals outside the four known variants.
	ErrUnsupportedInterval = errors.New("unsupported interval")
	// ErrInvalidValue is returned for numbers that have no plain decimal form.
	ErrInvalidValue = errors.New("invalid value")
)

const indent = " "

type attr struct {
	name  string
	value string
}

// element is a self-closing interval element.
type element struct {
	name  string
	attrs []attr
}

func (e element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.name)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		writeEscaped(&b, a.value)
		b.WriteByte('"')
	}
	b.WriteString("/>")
	return b.String()
}

// MarshalInterval renders one interval as its self-closing element.
func MarshalInterval(interval workout.Interval) (string, error) {
	el, err := intervalElement(interval)
	if err != nil {
		return "", err
	}
	return el.String(), nil
}

func intervalElement(interval workout.Interval) (element, error) {
	switch v := interval.(type) {
	case workout.SteadyState:
		power, err := FormatPower(v.Power)
		if err != nil {
			return element{}, err
		}
		el := element{name: "SteadyState", attrs: []attr{
			{name: "Duration", value: strconv.Itoa(v.Duration)},
			{name: "Power", value: power},
		}}
		return el.withCadence("Cadence", v.Cadence)

	case workout.RangedInterval:
		low, err := FormatPower(v.From)
		if err != nil {
			return element{}, err
		}
		high, err := FormatPower(v.To)
		if err != nil {
			return element{}, err
		}
		el := element{name: v.Kind().String(), attrs: []attr{
			{name: "Duration", value: strconv.Itoa(v.Duration)},
			{name: "PowerLow", value: low},
			{name: "PowerHigh", value: high},
		}}
		return el.withCadence("Cadence", v.Cadence)

	case workout.RepeatSet:
		onPower, err := FormatPower(v.On.Power)
		if err != nil {
			return element{}, err
		}
		offPower, err := FormatPower(v.Off.Power)
		if err != nil {
			return element{}, err
		}
		el := element{name: "IntervalsT", attrs: []attr{
			{name: "Repeat", value: strconv.Itoa(v.Repeat)},
			{name: "OnDuration", value: strconv.Itoa(v.On.Duration)},
			{name: "OffDuration", value: strconv.Itoa(v.Off.Duration)},
			{name: "OnPower", value: onPower},
			{name: "OffPower", value: offPower},
		}}
		el, err = el.withCadence("Cadence", v.On.Cadence)
		if err != nil {
			return element{}, err
		}
		return el.withCadence("CadenceResting", v.Off.Cadence)

	case workout.FreeRide:
		el := element{name: "FreeRide", attrs: []attr{
			{name: "Duration", value: strconv.Itoa(v.Duration)},
			{name: "FlatRoad", value: formatFlag(v.FlatRoad)},
		}}
		return el.withCadence("Cadence", v.Cadence)

	default:
		return element{}, fmt.Errorf("%w: %T", ErrUnsupportedInterval, interval)
	}
}

// withCadence appends the cadence attribute; unset cadences are left out.
func (e element) withCadence(name string, cadence workout.Cadence) (element, error) {
	rpm, ok := cadence.Value()
	if !ok {
		return e, nil
	}
	value, err := FormatCadence(rpm)
	if err != nil {
		return element{}, err
	}
	e.attrs = append(e.attrs, attr{name: name, value: value})
	return e, nil
}

// Marshal renders f as a complete .zwo document.
func Marshal(f workout.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes f to w as a complete .zwo document. Nothing is written when
// an interval cannot be rendered.
func Encode(w io.Writer, f workout.File) error {
	intervals := f.Workout.Intervals()
	elements := make([]element, 0, len(intervals))
	for i, interval := range intervals {
		el, err := intervalElement(interval)
		if err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
		elements = append(elements, el)
	}

	var b strings.Builder
	b.WriteString("<workout_file>\n")
	writeTextElement(&b, "author", f.Author)
	writeTextElement(&b, "name", f.Name)
	writeTextElement(&b, "description", f.Description)
	writeTextElement(&b, "sport_type", f.SportType)

	tags := workout.NormalizeTags(f.Tags)
	if len(tags) == 0 {
		b.WriteString(indent + "<tags/>\n")
	} else {
		b.WriteString(indent + "<tags>\n")
		for _, tag := range tags {
			b.WriteString(indent + indent)
			b.WriteString(element{name: "tag", attrs: []attr{{name: "name", value: tag}}}.String())
			b.WriteByte('\n')
		}
		b.WriteString(indent + "</tags>\n")
	}

	if len(elements) == 0 {
		b.WriteString(indent + "<workout/>\n")
	} else {
		b.WriteString(indent + "<workout>\n")
		for _, el := range elements {
			b.WriteString(indent + indent)
			b.WriteString(el.String())
			b.WriteByte('\n')
		}
		b.WriteString(indent + "</workout>\n")
	}
	b.WriteString("</workout_file>")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTextElement(b *strings.Builder, name, text string) {
	b.WriteString(indent)
	b.WriteString("<" + name + ">")
	writeEscapedText(b, text)
	b.WriteString("</" + name + ">\n")
}

func writeEscaped(b *strings.Builder, s string) {
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(b, []byte(s))
}

// writeEscapedText escapes character data but keeps line breaks literal, so
// multi-line descriptions stay readable.
func writeEscapedText(b *strings.Builder, s string) {
	var escaped strings.Builder
	writeEscaped(&escaped, s)
	b.WriteString(strings.ReplaceAll(escaped.String(), "&#xA;", "\n"))
}
