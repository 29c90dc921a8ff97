package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed sample.json
var sampleFS embed.FS

// SampleName is the embedded level used when no path is given.
const SampleName = "sample.json"

// Source yields a fresh Descriptor for each play start.
type Source interface {
	Load() (*Descriptor, error)
	Name() string
}

// FSSource reads a level from a filesystem.
type FSSource struct {
	FS   fs.FS
	Path string
}

// Sample returns the embedded sample level source.
func Sample() *FSSource {
	return &FSSource{FS: sampleFS, Path: SampleName}
}

func (s *FSSource) Name() string {
	return s.Path
}

func (s *FSSource) Load() (*Descriptor, error) {
	data, err := fs.ReadFile(s.FS, s.Path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", s.Path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parse %s: %w", s.Path, err)
	}
	return d, nil
}

// FileSource reads a level from disk and caches the parsed descriptor until
// MarkDirty is called.
type FileSource struct {
	Path string

	cached *Descriptor
	dirty  bool
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, dirty: true}
}

func (s *FileSource) Name() string {
	return s.Path
}

// MarkDirty forces the next Load to re-read the file.
func (s *FileSource) MarkDirty() {
	s.dirty = true
}

func (s *FileSource) Dirty() bool {
	return s.dirty
}

func (s *FileSource) Load() (*Descriptor, error) {
	if !s.dirty && s.cached != nil {
		return s.cached, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", s.Path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parse %s: %w", s.Path, err)
	}
	s.cached, s.dirty = d, false
	return d, nil
}
