package notestore

import (
	"time"

	"github.com/tphakala/lecturenotes/internal/errors"
)

// decryptionFailedPlaceholder is the observable content returned for a
// note whose ciphertext fails to authenticate, instead of propagating a
// decryption error up to the host.
const decryptionFailedPlaceholder = "Decryption Failed"

// NoteView is the decrypted, host-facing representation of a note.
type NoteView struct {
	ID        int64
	Title     string
	Content   string
	FolderID  *int64
	UpdatedAt int64
}

// NoteRaw carries a note's still-encrypted content, used when assembling
// delta-sync blobs that transport ciphertext directly rather than
// decrypting and re-encrypting on every sync pass.
type NoteRaw struct {
	ID        int64
	Title     string
	Content   []byte
	UpdatedAt int64
}

// AddNote encrypts content and inserts a new note, returning its id.
func (s *Store) AddNote(title, content string, folderID *int64) (int64, error) {
	ciphertext, err := s.crypto.Encrypt([]byte(content))
	if err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	note := Note{
		Title:     title,
		Content:   ciphertext,
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return 0, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	return note.ID, nil
}

// UpdateNote replaces a note's title and content, re-encrypting content
// and bumping updated_at.
func (s *Store) UpdateNote(id int64, title, content string) error {
	ciphertext, err := s.crypto.Encrypt([]byte(content))
	if err != nil {
		return err
	}

	result := s.db.Model(&Note{}).Where("id = ?", id).Updates(map[string]any{
		"title":      title,
		"content":    ciphertext,
		"updated_at": time.Now().Unix(),
	})
	if result.Error != nil {
		return errors.New(result.Error).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("note_id", id).Build()
	}
	if result.RowsAffected == 0 {
		return errors.Newf("note %d not found", id).Component(componentNotestore).
			Category(errors.CategoryNotFound).Build()
	}
	return nil
}

// AppendToNote fetches a note's current decrypted content, appends
// addition after a separator, and persists the merged result. This backs
// the Engine's "append summary to an existing note" swap path.
func (s *Store) AppendToNote(id int64, addition string) error {
	existing, err := s.GetNote(id)
	if err != nil {
		return err
	}
	return s.UpdateNote(id, existing.Title, existing.Content+"\n\n---\n\n"+addition)
}

// DeleteNote soft-deletes a note; it remains in the database for sync
// tombstone purposes but is excluded from folder listings.
func (s *Store) DeleteNote(id int64) error {
	result := s.db.Model(&Note{}).Where("id = ?", id).Update("is_deleted", true)
	if result.Error != nil {
		return errors.New(result.Error).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("note_id", id).Build()
	}
	return nil
}

// GetNote fetches a note by id, decrypting its content. A decryption
// failure surfaces as the observable placeholder content rather than an
// error, matching the engine's "never crash on a bad note" contract.
func (s *Store) GetNote(id int64) (NoteView, error) {
	var note Note
	if err := s.db.First(&note, id).Error; err != nil {
		return NoteView{}, errors.New(err).Component(componentNotestore).Category(errors.CategoryNotFound).
			Context("note_id", id).Build()
	}
	return s.decryptedView(note), nil
}

// GetNotesByFolder returns all non-deleted notes in folderID.
func (s *Store) GetNotesByFolder(folderID int64) ([]NoteView, error) {
	var notes []Note
	if err := s.db.Where("folder_id = ? AND is_deleted = ?", folderID, false).Find(&notes).Error; err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	return s.decryptedViews(notes), nil
}

// GetModifiedNotes returns decrypted notes updated at or after since, for
// delta-sync comparison on the caller's side.
func (s *Store) GetModifiedNotes(since int64) ([]NoteView, error) {
	var notes []Note
	if err := s.db.Where("updated_at >= ?", since).Find(&notes).Error; err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	return s.decryptedViews(notes), nil
}

// GetModifiedNotesRaw returns notes updated at or after since without
// decrypting their content, for assembling delta-sync blobs that
// transport ciphertext directly.
func (s *Store) GetModifiedNotesRaw(since int64) ([]NoteRaw, error) {
	var notes []Note
	if err := s.db.Where("updated_at >= ?", since).Find(&notes).Error; err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	raws := make([]NoteRaw, len(notes))
	for i, n := range notes {
		raws[i] = NoteRaw{ID: n.ID, Title: n.Title, Content: n.Content, UpdatedAt: n.UpdatedAt}
	}
	return raws, nil
}

func (s *Store) decryptedViews(notes []Note) []NoteView {
	views := make([]NoteView, len(notes))
	for i, n := range notes {
		views[i] = s.decryptedView(n)
	}
	return views
}

func (s *Store) decryptedView(note Note) NoteView {
	plaintext, err := s.crypto.Decrypt(note.Content)
	text := string(plaintext)
	if err != nil {
		s.logger.Warn("note decryption failed", "note_id", note.ID, "error", err)
		text = decryptionFailedPlaceholder
	}
	return NoteView{
		ID:        note.ID,
		Title:     note.Title,
		Content:   text,
		FolderID:  note.FolderID,
		UpdatedAt: note.UpdatedAt,
	}
}
