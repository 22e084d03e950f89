// Package photos keeps thumbnail copies of patient photos in the asset
// directory.
package photos

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// DefaultSize bounds the longest side of a stored thumbnail, in pixels.
const DefaultSize = 125

// Store writes thumbnails into a single directory.
type Store struct {
	dir  string
	size int
}

// NewStore creates a Store writing into dir. A size of zero or less selects
// DefaultSize.
func NewStore(dir string, size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{dir: dir, size: size}
}

// Save decodes the image at sourcePath, shrinks it to fit the thumbnail box
// and writes it under a fresh random name with the original extension.
// The source file is left untouched. Images already inside the box are not
// enlarged.
func (s *Store) Save(sourcePath string) (string, error) {
	img, err := imaging.Open(sourcePath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open photo %s: %w", sourcePath, err)
	}

	b := img.Bounds()
	if b.Dx() > s.size || b.Dy() > s.size {
		img = imaging.Fit(img, s.size, s.size, imaging.Lanczos)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset directory %s: %w", s.dir, err)
	}

	name := uuid.New().String() + filepath.Ext(sourcePath)
	if err := imaging.Save(img, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("failed to write photo %s: %w", name, err)
	}
	return name, nil
}

// Path resolves a stored photo reference. Absolute references written by
// older versions are returned unchanged.
func (s *Store) Path(ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(s.dir, ref)
}
