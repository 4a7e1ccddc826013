package notestore

import (
	"time"

	"github.com/tphakala/lecturenotes/internal/errors"
)

// AttachmentView is the host-facing representation of an attachment.
type AttachmentView struct {
	ID       int64
	FileType string
	FilePath string
}

// AddAttachment records an on-disk artifact (e.g. the WAV recording
// backing a note) against a note.
func (s *Store) AddAttachment(noteID int64, fileType, filePath string) (int64, error) {
	attachment := Attachment{
		NoteID:    noteID,
		FileType:  fileType,
		FilePath:  filePath,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		return 0, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("note_id", noteID).Build()
	}
	return attachment.ID, nil
}

// GetAttachments returns all attachments for a note.
func (s *Store) GetAttachments(noteID int64) ([]AttachmentView, error) {
	var attachments []Attachment
	if err := s.db.Where("note_id = ?", noteID).Find(&attachments).Error; err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("note_id", noteID).Build()
	}
	views := make([]AttachmentView, len(attachments))
	for i, a := range attachments {
		views[i] = AttachmentView{ID: a.ID, FileType: a.FileType, FilePath: a.FilePath}
	}
	return views, nil
}
