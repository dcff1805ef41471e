// Package photo imports property photos into the configured photo
// directory, scaling them to a standard display size and generating
// thumbnails.
package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"rem-go/internal/rem"
)

const (
	// maxWidth/maxHeight bound the stored image; larger photos are scaled
	// down to fit, smaller ones are kept as-is.
	maxWidth  = 1920
	maxHeight = 1080

	thumbWidth  = 300
	thumbHeight = 200

	thumbsDirName = "thumbnails"
	thumbPrefix   = "thumb_"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// Manager implements rem.PhotoManager on a directory tree:
//
//	<dir>/
//	  <name>.jpg
//	  thumbnails/
//	    thumb_<name>.jpg
type Manager struct {
	dir   string
	clock rem.Clock
	ids   rem.IDGenerator
}

// NewManager creates a Manager storing photos under dir.
func NewManager(dir string, clock rem.Clock, ids rem.IDGenerator) *Manager {
	return &Manager{dir: dir, clock: clock, ids: ids}
}

// Save imports the image at sourcePath. The stored name embeds the company
// code, an import timestamp and a short random suffix, so repeated imports
// of the same source never collide.
func (m *Manager) Save(sourcePath, companyCode string) (string, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image format: %s", ext)
	}
	if _, err := os.Stat(sourcePath); err != nil {
		return "", fmt.Errorf("photo file not accessible: %w", err)
	}

	img, err := imaging.Open(sourcePath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(m.dir, thumbsDirName), 0755); err != nil {
		return "", fmt.Errorf("creating photo directories: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.jpg",
		companyCode,
		m.clock.Now().Format("20060102_150405"),
		shortID(m.ids.New()),
	)

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}
	if err := imaging.Save(img, m.Path(name), imaging.JPEGQuality(90)); err != nil {
		return "", fmt.Errorf("saving photo: %w", err)
	}

	thumb := imaging.Thumbnail(img, thumbWidth, thumbHeight, imaging.Lanczos)
	if err := imaging.Save(thumb, m.ThumbnailPath(name), imaging.JPEGQuality(85)); err != nil {
		// The photo itself is saved; a photo without a thumbnail beats
		// failing the whole import.
		return name, nil
	}

	return name, nil
}

// Remove deletes a stored photo and its thumbnail if present.
func (m *Manager) Remove(filename string) error {
	if err := os.Remove(m.Path(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing photo: %w", err)
	}
	if err := os.Remove(m.ThumbnailPath(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing thumbnail: %w", err)
	}
	return nil
}

// Path returns the absolute path of a stored photo.
func (m *Manager) Path(filename string) string {
	return filepath.Join(m.dir, filename)
}

// ThumbnailPath returns the absolute path of a photo's thumbnail.
func (m *Manager) ThumbnailPath(filename string) string {
	return filepath.Join(m.dir, thumbsDirName, thumbPrefix+filename)
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Compile-time check that Manager implements rem.PhotoManager.
var _ rem.PhotoManager = (*Manager)(nil)
