package notestore

import (
	"time"

	"github.com/tphakala/lecturenotes/internal/errors"
)

// SaveAudioChunk appends an incremental slice of raw audio against a
// note. This is an alternate, optional persistence path alongside the
// Engine's one-shot WAV attachment at summary time — useful for callers
// that want to stream audio into the store continuously rather than
// waiting until a recording session ends.
func (s *Store) SaveAudioChunk(noteID int64, data []byte, durationMs int64) (int64, error) {
	chunk := AudioChunk{
		NoteID:     noteID,
		Data:       data,
		DurationMs: durationMs,
		CreatedAt:  time.Now().Unix(),
	}
	if err := s.db.Create(&chunk).Error; err != nil {
		return 0, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("note_id", noteID).Build()
	}
	return chunk.ID, nil
}

// GetAudioChunks returns all audio chunks recorded against a note, in
// insertion order.
func (s *Store) GetAudioChunks(noteID int64) ([]AudioChunk, error) {
	var chunks []AudioChunk
	if err := s.db.Where("note_id = ?", noteID).Order("id asc").Find(&chunks).Error; err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("note_id", noteID).Build()
	}
	return chunks, nil
}
