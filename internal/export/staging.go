package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/starford/pasarela/internal/apperr"
)

// DefaultAssetDir is the directory staged images are deployed under.
const DefaultAssetDir = "assets/images"

// File is an image picked by the operator. Open is called once, when the
// bundle is built.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// BytesFile wraps in-memory content as a File.
func BytesFile(name string, data []byte) File {
	return File{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// DiskFile wraps a file on disk; its name is the base name of p.
func DiskFile(p string) File {
	return File{
		Name: filepath.Base(p),
		Open: func() (io.ReadCloser, error) { return os.Open(p) },
	}
}

// Staged pairs a picked file with its deterministic asset path.
type Staged struct {
	File File
	Path string
}

// Stager keeps the ordered list of staged images, at most one per path.
// It is not safe for concurrent use.
type Stager struct {
	dir   string
	items []Staged
}

// NewStager creates a stager placing files under dir.
func NewStager(dir string) *Stager {
	if dir == "" {
		dir = DefaultAssetDir
	}
	return &Stager{dir: dir}
}

// PathFor returns the asset path a file named name is staged under.
func (s *Stager) PathFor(name string) string {
	return path.Join(s.dir, SanitizeFilename(name))
}

// Stage records f and returns its path. When the path is already staged the
// first file is kept and added is false.
func (s *Stager) Stage(f File) (p string, added bool) {
	p = s.PathFor(f.Name)
	for _, it := range s.items {
		if it.Path == p {
			return p, false
		}
	}
	s.items = append(s.items, Staged{File: f, Path: p})
	return p, true
}

// Unstage removes the entry at position i.
func (s *Stager) Unstage(i int) error {
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("export: unstage %d: %w", i, apperr.ErrNotFound)
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return nil
}

// Paths returns the staged asset paths in staging order.
func (s *Stager) Paths() []string {
	out := make([]string, len(s.items))
	for i, it := range s.items {
		out[i] = it.Path
	}
	return out
}

// Staged returns a copy of the staged entries.
func (s *Stager) Staged() []Staged {
	return append([]Staged(nil), s.items...)
}

// Len returns the number of staged entries.
func (s *Stager) Len() int {
	return len(s.items)
}
