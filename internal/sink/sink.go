package sink

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// UnformattedSuffix ends the name of the debug copy kept for a file that
// failed to format.
const UnformattedSuffix = ".unformatted.go"

// Artifact is one rendered file ready to persist.
type Artifact struct {
	// PackagePath is the import path of the target package.
	PackagePath string
	// PackageName is the Go package name.
	PackageName string
	// Dir is the target package directory; empty when unknown.
	Dir string
	// Filename is the base name of the generated file.
	Filename string
	// Content is the formatted Go source.
	Content []byte
}

// Path returns the destination of a under dir, or under a.Dir when dir is
// empty.
func (a Artifact) Path(dir string) string {
	if dir == "" {
		dir = a.Dir
	}

	return filepath.Join(dir, a.Filename)
}

// CodeSink persists artifacts.
type CodeSink interface {
	Emit(a Artifact) error
}

// DebugSink is implemented by sinks that can keep unformatted output of a
// failed render for inspection.
type DebugSink interface {
	EmitUnformatted(a Artifact) error
}

// FileSink writes artifacts to disk.
type FileSink struct {
	// OutputDir overrides the package directory when set.
	OutputDir string
}

// Emit implements CodeSink. It creates the directory if it doesn't exist.
func (s FileSink) Emit(a Artifact) error {
	if s.OutputDir == "" && a.Dir == "" {
		return fmt.Errorf("no output directory for %s", a.Filename)
	}

	path := a.Path(s.OutputDir)

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, a.Content, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", a.Filename, err)
	}

	return nil
}

// EmitUnformatted implements DebugSink. It writes the content next to the
// intended output as "<name>.unformatted.go". It is best-effort.
func (s FileSink) EmitUnformatted(a Artifact) error {
	if a.Filename == "" {
		return nil
	}

	// Keep it a .go file so editors can syntax highlight, but avoid colliding
	// with real output.
	a.Filename = strings.TrimSuffix(a.Filename, ".go") + UnformattedSuffix

	return s.Emit(a)
}

// MemorySink keeps emitted artifacts in memory, keyed by package path and
// file name. It is safe for concurrent use.
type MemorySink struct {
	mu    sync.Mutex
	files map[string]Artifact
	// Fail, when set, makes Emit return its result instead of storing.
	Fail func(a Artifact) error
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]Artifact)}
}

func memoryKey(pkgPath, filename string) string {
	return pkgPath + "/" + filename
}

// Emit implements CodeSink.
func (s *MemorySink) Emit(a Artifact) error {
	if s.Fail != nil {
		if err := s.Fail(a); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		s.files = make(map[string]Artifact)
	}

	a.Content = bytes.Clone(a.Content)
	s.files[memoryKey(a.PackagePath, a.Filename)] = a

	return nil
}

// Get returns the artifact stored for a package path and file name.
func (s *MemorySink) Get(pkgPath, filename string) (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.files[memoryKey(pkgPath, filename)]

	return a, ok
}

// Keys returns the sorted "pkgPath/filename" keys of all stored artifacts.
func (s *MemorySink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ErrStale is returned by CheckSink when a file on disk differs from the
// artifact, or is missing.
var ErrStale = errors.New("generated file is out of date")

// CheckSink compares artifacts with the files on disk.
type CheckSink struct {
	// OutputDir overrides the package directory when set.
	OutputDir string
}

// Emit implements CodeSink. It never writes.
func (s CheckSink) Emit(a Artifact) error {
	path := a.Path(s.OutputDir)

	current, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w (missing)", path, ErrStale)
	}

	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if !bytes.Equal(current, a.Content) {
		return fmt.Errorf("%s: %w", path, ErrStale)
	}

	return nil
}
