package notestore

import (
	"time"

	"github.com/tphakala/lecturenotes/internal/errors"
)

// FolderView is the host-facing representation of a folder.
type FolderView struct {
	ID   int64
	Name string
}

// CreateFolder inserts a new folder and returns its id.
func (s *Store) CreateFolder(name string) (int64, error) {
	folder := Folder{Name: name, CreatedAt: time.Now().Unix()}
	if err := s.db.Create(&folder).Error; err != nil {
		return 0, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	return folder.ID, nil
}

// GetFolders returns all folders.
func (s *Store) GetFolders() ([]FolderView, error) {
	var folders []Folder
	if err := s.db.Find(&folders).Error; err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	views := make([]FolderView, len(folders))
	for i, f := range folders {
		views[i] = FolderView{ID: f.ID, Name: f.Name}
	}
	return views, nil
}
