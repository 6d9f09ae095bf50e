package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gofrs/flock"

	"github.com/alexshpunt/zwift-workouts-parser/internal/fileutil"
	"github.com/alexshpunt/zwift-workouts-parser/internal/textutil"
)

const (
	// Extension is appended to every written workout.
	Extension = ".zwo"
	lockName  = ".zwoparse.lock"
	fallback  = "workout"
)

// ErrLocked is returned by Open when another run holds the export directory.
var ErrLocked = errors.New("export directory is locked by another run")

// Option configures a DirSink.
type Option func(*DirSink)

// WithDryRun resolves paths without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(s *DirSink) { s.dryRun = dryRun }
}

// WithFileMode overrides the permissions of written files.
func WithFileMode(mode os.FileMode) Option {
	return func(s *DirSink) { s.mode = mode }
}

// DirSink writes workouts below a root directory.
type DirSink struct {
	root   string
	dryRun bool
	mode   os.FileMode
	lock   *flock.Flock

	mu      sync.Mutex
	claimed map[string]struct{}
}

// NewDirSink returns a sink rooted at root. Call Open before writing.
func NewDirSink(root string, opts ...Option) *DirSink {
	s := &DirSink{
		root:    root,
		mode:    0o644,
		claimed: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the export directory.
func (s *DirSink) Root() string { return s.root }

// DryRun reports whether writes are skipped.
func (s *DirSink) DryRun() bool { return s.dryRun }

// Open creates the export directory and takes the run lock. Dry runs take no lock.
func (s *DirSink) Open() error {
	if s.dryRun {
		return nil
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	s.lock = flock.New(filepath.Join(s.root, lockName))
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire export lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

// Close releases the run lock.
func (s *DirSink) Close() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.Unlock()
	s.lock = nil
	if err != nil {
		return fmt.Errorf("release export lock: %w", err)
	}
	return nil
}

// Path returns where a workout would be written, without claiming it.
func (s *DirSink) Path(directory, name string) string {
	return filepath.Join(s.dirFor(directory), fileStem(name)+Extension)
}

func (s *DirSink) dirFor(directory string) string {
	slug := textutil.SlugifyPath(directory)
	if slug == "" {
		return s.root
	}
	return filepath.Join(s.root, filepath.FromSlash(slug))
}

func fileStem(name string) string {
	if stem := textutil.Slugify(textutil.SanitizeFileName(name), true); stem != "" {
		return stem
	}
	return fallback
}

// claim reserves a path for this run. Workouts whose names slugify to the same
// file get a numeric suffix instead of overwriting each other.
func (s *DirSink) claim(directory, name string) string {
	dir := s.dirFor(directory)
	stem := fileStem(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	candidate := filepath.Join(dir, stem+Extension)
	for n := 2; ; n++ {
		if _, taken := s.claimed[candidate]; !taken {
			break
		}
		candidate = filepath.Join(dir, stem+"-"+strconv.Itoa(n)+Extension)
	}
	s.claimed[candidate] = struct{}{}
	return candidate
}

// Write stores data for the named workout and returns the file path. In dry-run
// mode the path is returned and nothing is written.
func (s *DirSink) Write(ctx context.Context, directory, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := s.claim(directory, name)
	if s.dryRun {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create workout directory: %w", err)
	}
	if fileutil.SameContents(path, data) {
		return path, nil
	}
	if err := fileutil.WriteFileAtomic(path, data, s.mode); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
