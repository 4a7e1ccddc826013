// Package notestore implements the encrypted, full-text-searchable note
// store backing the lecture notes engine: SQLite over GORM with WAL
// journaling, AES-256-GCM content encryption, an FTS5 title index, and a
// brute-force cosine-similarity embedding search for retrieval-augmented
// summarization.
package notestore

// Note is the persisted row shape for a note. Content is always
// ciphertext (nonce || ciphertext || gcm tag, see crypto.go) — callers
// never see plaintext through this type, only through NoteView.
type Note struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Title     string
	Content   []byte `gorm:"type:blob"`
	Tags      string
	FolderID  *int64
	CreatedAt int64
	UpdatedAt int64
	IsDeleted bool
}

func (Note) TableName() string { return "notes" }

// Folder groups notes for browsing.
type Folder struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Name      string
	CreatedAt int64
}

func (Folder) TableName() string { return "folders" }

// Attachment records an on-disk artifact (audio recording, image, etc.)
// associated with a note.
type Attachment struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	NoteID    int64
	FileType  string
	FilePath  string
	CreatedAt int64
}

func (Attachment) TableName() string { return "attachments" }

// AudioChunk is an incremental slice of raw audio associated with a note,
// for callers that stream audio into the store rather than attaching one
// finished WAV file at summary time.
type AudioChunk struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	NoteID     int64
	Data       []byte `gorm:"type:blob"`
	DurationMs int64
	CreatedAt  int64
}

func (AudioChunk) TableName() string { return "audio_chunks" }

// Embedding is the stored retrieval vector for a note, keyed by note id.
// Vec is a little-endian float32 array; see vector.go.
type Embedding struct {
	NoteID int64 `gorm:"primaryKey"`
	Vec    []byte `gorm:"type:blob"`
}

func (Embedding) TableName() string { return "embeddings" }

// storeMeta holds small key/value facts about the database itself, such
// as the Argon2id salt used to derive the content encryption key.
type storeMeta struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func (storeMeta) TableName() string { return "store_meta" }
