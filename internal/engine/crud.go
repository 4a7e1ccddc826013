package engine

import (
	"github.com/tphakala/lecturenotes/internal/errors"
	"github.com/tphakala/lecturenotes/internal/notestore"
)

// CreateFolder inserts a new folder and returns its id.
func (e *Engine) CreateFolder(name string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.CreateFolder(name)
}

// GetFolders returns all folders.
func (e *Engine) GetFolders() ([]notestore.FolderView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetFolders()
}

// GetNotesByFolder returns all non-deleted notes in folderID.
func (e *Engine) GetNotesByFolder(folderID int64) ([]notestore.NoteView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetNotesByFolder(folderID)
}

// AddNote inserts a new note directly, bypassing summarization.
func (e *Engine) AddNote(title, content string, folderID *int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.AddNote(title, content, folderID)
}

// UpdateNote replaces a note's title and content.
func (e *Engine) UpdateNote(id int64, title, content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.UpdateNote(id, title, content)
}

// DeleteNote soft-deletes a note.
func (e *Engine) DeleteNote(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.DeleteNote(id)
}

// GetNote fetches a single note.
func (e *Engine) GetNote(id int64) (notestore.NoteView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetNote(id)
}

// AddAttachment records an on-disk artifact against a note.
func (e *Engine) AddAttachment(noteID int64, fileType, filePath string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.AddAttachment(noteID, fileType, filePath)
}

// GetAttachments returns all attachments for a note.
func (e *Engine) GetAttachments(noteID int64) ([]notestore.AttachmentView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetAttachments(noteID)
}

// SearchNotes embeds query, loads the embedder just for the duration of
// the search, and returns the notes ranked by similarity.
func (e *Engine) SearchNotes(query string) ([]notestore.NoteView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.models.LoadEmbedder(); err != nil {
		return nil, err
	}
	defer e.models.UnloadEmbedder()

	vec := e.models.Embed(query)
	if vec == nil {
		return nil, errors.Newf("embedder unavailable").
			Component(componentEngine).Category(errors.CategoryModelInit).Build()
	}

	similar, err := e.store.SearchSimilar(vec, 10)
	if err != nil {
		return nil, err
	}

	notes := make([]notestore.NoteView, 0, len(similar))
	for _, s := range similar {
		note, err := e.store.GetNote(s.NoteID)
		if err != nil {
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}
