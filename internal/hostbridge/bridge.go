// Package hostbridge exposes a single process-wide Engine behind a mutex,
// matching the function-call facade a GUI shell (desktop or mobile) links
// against directly rather than over a network boundary.
package hostbridge

import (
	"sync"

	"github.com/tphakala/lecturenotes/internal/engine"
	"github.com/tphakala/lecturenotes/internal/errors"
	"github.com/tphakala/lecturenotes/internal/notestore"
)

const componentHostbridge = "hostbridge"

var (
	mu  sync.Mutex
	eng *engine.Engine
)

func errNotInitialized() error {
	return errors.Newf("Engine not initialized").
		Component(componentHostbridge).Category(errors.CategoryState).Build()
}

// withEngine runs fn against the current engine singleton under the
// package mutex, returning errNotInitialized if InitApp has not run yet.
func withEngine(fn func(*engine.Engine) error) error {
	mu.Lock()
	defer mu.Unlock()
	if eng == nil {
		return errNotInitialized()
	}
	return fn(eng)
}

// InitApp constructs the process-wide Engine. Calling it again after a
// prior successful call closes the old Engine first.
func InitApp(dbPath, modelsDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if eng != nil {
		_ = eng.Close()
		eng = nil
	}

	e, err := engine.New(dbPath, modelsDir)
	if err != nil {
		return err
	}
	eng = e
	return nil
}

// ShutdownApp closes the engine singleton, if any, releasing the note
// store and any resident models.
func ShutdownApp() error {
	mu.Lock()
	defer mu.Unlock()
	if eng == nil {
		return nil
	}
	err := eng.Close()
	eng = nil
	return err
}

// StartRecording begins a recording session tagged with subject.
func StartRecording(subject string) error {
	return withEngine(func(e *engine.Engine) error {
		return e.StartRecording(subject)
	})
}

// StopRecording runs the swap protocol and returns the resulting summary
// text. appendTo, if non-nil, merges the summary into an existing note
// instead of creating a new one.
func StopRecording(appendTo *int64) (string, error) {
	var summary string
	err := withEngine(func(e *engine.Engine) error {
		var err error
		summary, err = e.StopRecordingAndSummarize(appendTo)
		return err
	})
	return summary, err
}

// UpdateThermalStatus forwards a battery temperature reading to the
// Endurance Controller.
func UpdateThermalStatus(batteryTemp float64) error {
	return withEngine(func(e *engine.Engine) error {
		e.UpdateBatteryTemp(batteryTemp)
		return nil
	})
}

// CreateFolder inserts a new folder and returns its id.
func CreateFolder(name string) (int64, error) {
	var id int64
	err := withEngine(func(e *engine.Engine) error {
		var err error
		id, err = e.CreateFolder(name)
		return err
	})
	return id, err
}

// GetFolders returns all folders.
func GetFolders() ([]notestore.FolderView, error) {
	var folders []notestore.FolderView
	err := withEngine(func(e *engine.Engine) error {
		var err error
		folders, err = e.GetFolders()
		return err
	})
	return folders, err
}

// GetNotesByFolder returns all non-deleted notes in folderID.
func GetNotesByFolder(folderID int64) ([]notestore.NoteView, error) {
	var notes []notestore.NoteView
	err := withEngine(func(e *engine.Engine) error {
		var err error
		notes, err = e.GetNotesByFolder(folderID)
		return err
	})
	return notes, err
}

// SetCurrentFolder updates which folder new notes are filed under.
func SetCurrentFolder(folderID *int64) error {
	return withEngine(func(e *engine.Engine) error {
		e.SetCurrentFolder(folderID)
		return nil
	})
}

// AddNote inserts a new note directly, bypassing summarization.
func AddNote(title, content string, folderID *int64) (int64, error) {
	var id int64
	err := withEngine(func(e *engine.Engine) error {
		var err error
		id, err = e.AddNote(title, content, folderID)
		return err
	})
	return id, err
}

// UpdateNote replaces a note's title and content.
func UpdateNote(id int64, title, content string) error {
	return withEngine(func(e *engine.Engine) error {
		return e.UpdateNote(id, title, content)
	})
}

// DeleteNote soft-deletes a note.
func DeleteNote(id int64) error {
	return withEngine(func(e *engine.Engine) error {
		return e.DeleteNote(id)
	})
}

// GetNote fetches a single note.
func GetNote(id int64) (notestore.NoteView, error) {
	var note notestore.NoteView
	err := withEngine(func(e *engine.Engine) error {
		var err error
		note, err = e.GetNote(id)
		return err
	})
	return note, err
}

// AddAttachment records an on-disk artifact against a note.
func AddAttachment(noteID int64, fileType, filePath string) (int64, error) {
	var id int64
	err := withEngine(func(e *engine.Engine) error {
		var err error
		id, err = e.AddAttachment(noteID, fileType, filePath)
		return err
	})
	return id, err
}

// GetAttachments returns all attachments for a note.
func GetAttachments(noteID int64) ([]notestore.AttachmentView, error) {
	var attachments []notestore.AttachmentView
	err := withEngine(func(e *engine.Engine) error {
		var err error
		attachments, err = e.GetAttachments(noteID)
		return err
	})
	return attachments, err
}

// GetCurrentTranscript runs one Tick and returns the current Rolling
// Transcript contents.
func GetCurrentTranscript() (string, error) {
	var text string
	err := withEngine(func(e *engine.Engine) error {
		text = e.GetCurrentTranscript()
		return nil
	})
	return text, err
}

// SearchNotes returns notes ranked by similarity to query.
func SearchNotes(query string) ([]notestore.NoteView, error) {
	var notes []notestore.NoteView
	err := withEngine(func(e *engine.Engine) error {
		var err error
		notes, err = e.SearchNotes(query)
		return err
	})
	return notes, err
}
