package testutil

import (
	"fmt"
	"path/filepath"
)

// StubPhotoManager satisfies rem.PhotoManager without touching image files.
// Save returns deterministic filenames; Remove records what was deleted.
type StubPhotoManager struct {
	counter int
	Saved   []string
	Removed []string
	// SaveErr, when set, is returned from Save.
	SaveErr error
}

func NewStubPhotoManager() *StubPhotoManager {
	return &StubPhotoManager{}
}

func (m *StubPhotoManager) Save(sourcePath, companyCode string) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	m.counter++
	name := fmt.Sprintf("%s_photo_%d.jpg", companyCode, m.counter)
	m.Saved = append(m.Saved, name)
	return name, nil
}

func (m *StubPhotoManager) Remove(filename string) error {
	m.Removed = append(m.Removed, filename)
	return nil
}

func (m *StubPhotoManager) Path(filename string) string {
	return filepath.Join("photos", filename)
}

func (m *StubPhotoManager) ThumbnailPath(filename string) string {
	return filepath.Join("photos", "thumbnails", "thumb_"+filename)
}
