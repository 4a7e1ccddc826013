package notestore

import (
	"gorm.io/gorm"

	"github.com/tphakala/lecturenotes/internal/errors"
)

// migrate creates the notes/folders/attachments/audio_chunks/embeddings/
// store_meta tables via GORM AutoMigrate, then ensures the FTS5 index and
// its sync triggers exist.
//
// The index uses content='notes', content_rowid='id' — the notes table's
// actual primary key column. Note content is stored encrypted, so it
// cannot usefully be indexed for full-text search before decryption; the
// triggers below index only the title, leaving notes_fts a title index
// rather than a whole-note index.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Note{}, &Folder{}, &Attachment{}, &AudioChunk{}, &Embedding{}, &storeMeta{}); err != nil {
		return errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}

	statements := []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			title, content, content='notes', content_rowid='id'
		)`,
		`CREATE TRIGGER IF NOT EXISTS notes_ai AFTER INSERT ON notes BEGIN
			INSERT INTO notes_fts(rowid, title, content) VALUES (new.id, new.title, '');
		END`,
		`CREATE TRIGGER IF NOT EXISTS notes_ad AFTER DELETE ON notes BEGIN
			INSERT INTO notes_fts(notes_fts, rowid, title, content) VALUES ('delete', old.id, old.title, '');
		END`,
		`CREATE TRIGGER IF NOT EXISTS notes_au AFTER UPDATE ON notes BEGIN
			INSERT INTO notes_fts(notes_fts, rowid, title, content) VALUES ('delete', old.id, old.title, '');
			INSERT INTO notes_fts(rowid, title, content) VALUES (new.id, new.title, '');
		END`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
				Context("statement", stmt).Build()
		}
	}
	return nil
}
