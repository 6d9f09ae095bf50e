package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/alexshpunt/zwift-workouts-parser/internal/textutil"
)

// Format selects how a manifest is decoded.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ErrUnknownFormat is returned for a format name Read does not understand.
var ErrUnknownFormat = errors.New("unknown manifest format")

type document struct {
	Workouts []Entry `toml:"workouts" yaml:"workouts"`
}

// DetectFormat picks the format from the file extension. Anything that is not
// TOML or YAML is read as plain text rows.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Load reads every entry from the manifest at path.
func Load(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	entries, err := Read(file, DetectFormat(path), path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return entries, nil
}

// Read decodes entries from r. source is recorded on every entry; for plain
// text it also provides the workout name.
func Read(r io.Reader, format Format, source string) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	switch format {
	case FormatTOML:
		entries, err = readTOML(r)
	case FormatYAML:
		entries, err = readYAML(r)
	case FormatText:
		entries, err = readText(r, source)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Source = source
	}
	return entries, nil
}

func readTOML(r io.Reader) ([]Entry, error) {
	var doc document
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return doc.Workouts, nil
}

func readYAML(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return doc.Workouts, nil
}

// readText reads one workout: every non-blank line that is not a "#" comment
// is an interval row.
func readText(r io.Reader, source string) ([]Entry, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return []Entry{{
		Name: textutil.Title(textutil.FileStem(source)),
		Rows: rows,
	}}, nil
}
