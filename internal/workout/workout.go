package workout

import (
	"sort"
	"strings"
)

// Workout is an ordered ride timeline. Order is document order of the
// source rows and is significant.
type Workout struct {
	intervals []Interval
}

// New builds a workout from intervals in timeline order. The slice is copied.
func New(intervals ...Interval) Workout {
	cp := make([]Interval, len(intervals))
	copy(cp, intervals)
	return Workout{intervals: cp}
}

// Intervals returns a copy of the timeline.
func (w Workout) Intervals() []Interval {
	cp := make([]Interval, len(w.intervals))
	copy(cp, w.intervals)
	return cp
}

// Len returns the number of intervals.
func (w Workout) Len() int {
	return len(w.intervals)
}

// TotalDuration returns the length of the ride in seconds.
func (w Workout) TotalDuration() int {
	total := 0
	for _, interval := range w.intervals {
		total += interval.Seconds()
	}
	return total
}

const (
	DefaultAuthor      = "Zwift Parser"
	DefaultName        = "Zwift Workout"
	DefaultDescription = "Parsed Zwift Workout"
	DefaultSportType   = "bike"
)

// File wraps a workout with the metadata of a workout document.
type File struct {
	Author      string
	Name        string
	Description string
	SportType   string
	Tags        []string
	Workout     Workout
}

// FileOption customizes a File built by NewFile.
type FileOption func(*File)

// WithAuthor overrides the default author. Blank values are ignored.
func WithAuthor(author string) FileOption {
	return func(f *File) {
		if strings.TrimSpace(author) != "" {
			f.Author = author
		}
	}
}

// WithName overrides the default name. Blank values are ignored.
func WithName(name string) FileOption {
	return func(f *File) {
		if strings.TrimSpace(name) != "" {
			f.Name = name
		}
	}
}

// WithDescription overrides the default description. Blank values are ignored.
func WithDescription(description string) FileOption {
	return func(f *File) {
		if strings.TrimSpace(description) != "" {
			f.Description = description
		}
	}
}

// WithSportType overrides the default sport type. Blank values are ignored.
func WithSportType(sportType string) FileOption {
	return func(f *File) {
		if strings.TrimSpace(sportType) != "" {
			f.SportType = strings.TrimSpace(sportType)
		}
	}
}

// WithTags adds tags. Tags form a set: blanks and duplicates are dropped and
// the result is sorted.
func WithTags(tags ...string) FileOption {
	return func(f *File) {
		f.Tags = NormalizeTags(append(f.Tags, tags...))
	}
}

// NewFile wraps w with default metadata, then applies opts in order.
func NewFile(w Workout, opts ...FileOption) File {
	f := File{
		Author:      DefaultAuthor,
		Name:        DefaultName,
		Description: DefaultDescription,
		SportType:   DefaultSportType,
		Workout:     w,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// NormalizeTags trims tags, drops blanks and duplicates, and sorts the rest.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
