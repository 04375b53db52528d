// Package template persists cropped screen images used as search patterns.
// Filenames are opaque keys derived from the capture timestamp.
package template

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// Store reads and writes template images in a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first save.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger, now: time.Now}
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

// Save writes img as a PNG named by the current timestamp with millisecond
// precision and returns the generated filename. The name is a key for Open,
// never parsed.
func (s *Store) Save(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("template save: nil image")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("template dir %s: %w", s.dir, err)
	}
	name := s.now().Format("2006-01-02_15.04.05.000") + ".png"
	path := filepath.Join(s.dir, name)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("template save %s: %w", name, err)
	}
	if s.logger != nil {
		s.logger.Debug("template saved", "name", name)
	}
	return name, nil
}

// Open loads a template by name. A bare filename resolves against the store
// directory; a name containing a path separator is used as-is.
func (s *Store) Open(name string) (image.Image, error) {
	path := name
	if !strings.ContainsAny(name, `/\`) {
		path = filepath.Join(s.dir, name)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template open %s: %w", name, err)
	}
	return img, nil
}
