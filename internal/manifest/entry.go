package manifest

import (
	"strings"
)

// Entry is one workout as read from a manifest.
type Entry struct {
	Directory   string   `toml:"directory" yaml:"directory"`
	Name        string   `toml:"name" yaml:"name"`
	Author      string   `toml:"author" yaml:"author"`
	Description string   `toml:"description" yaml:"description"`
	SportTypes  []string `toml:"sport_types" yaml:"sport_types"`
	Tags        []string `toml:"tags" yaml:"tags"`
	Rows        []string `toml:"rows" yaml:"rows"`

	// Source is the file the entry was read from.
	Source string `toml:"-" yaml:"-"`
}

// Label identifies the entry in logs and reports.
func (e Entry) Label() string {
	dir := strings.Trim(strings.TrimSpace(e.Directory), "/")
	name := strings.TrimSpace(e.Name)
	switch {
	case dir == "" && name == "":
		return "(unnamed)"
	case dir == "":
		return name
	case name == "":
		return dir + "/(unnamed)"
	default:
		return dir + "/" + name
	}
}

// HasContent reports whether the entry names a workout or carries any rows.
func (e Entry) HasContent() bool {
	if strings.TrimSpace(e.Name) != "" {
		return true
	}
	for _, row := range e.Rows {
		if strings.TrimSpace(row) != "" {
			return true
		}
	}
	return false
}

// NonBlankRows returns the rows with surrounding whitespace removed and blank
// rows dropped, in their original order. source[i] is the index in e.Rows of
// rows[i].
func (e Entry) NonBlankRows() (rows []string, source []int) {
	rows = make([]string, 0, len(e.Rows))
	source = make([]int, 0, len(e.Rows))
	for i, row := range e.Rows {
		if row = strings.TrimSpace(row); row != "" {
			rows = append(rows, row)
			source = append(source, i)
		}
	}
	return rows, source
}

const authorPrefix = "Author:"

// NormalizeAuthor strips an "Author:" label and surrounding whitespace.
func NormalizeAuthor(raw string) string {
	if _, after, found := strings.Cut(raw, authorPrefix); found {
		raw = after
	}
	return strings.TrimSpace(raw)
}

// IsBikeSport reports whether any sport-type token names a bike workout.
// An entry without tokens is assumed to be a bike workout.
func IsBikeSport(tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, token := range tokens {
		if strings.Contains(strings.ToLower(token), "bike") {
			return true
		}
	}
	return false
}
