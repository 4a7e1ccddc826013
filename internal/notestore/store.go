package notestore

import (
	"encoding/hex"
	stderrors "errors"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tphakala/lecturenotes/internal/errors"
	"github.com/tphakala/lecturenotes/internal/logging"
)

const componentNotestore = "notestore"

const kdfSaltKey = "kdf_salt"

// Store wraps a SQLite database with WAL journaling, AES-256-GCM content
// encryption, an FTS5 title index, and brute-force cosine similarity
// search over embeddings.
type Store struct {
	db     *gorm.DB
	crypto *Crypto
	logger *slog.Logger
}

// Open creates or opens the database at path, applies WAL and
// synchronous=NORMAL pragmas, migrates the schema, and derives the
// content encryption key from passphrase using a salt persisted
// alongside the database (generated on first open).
func Open(path, passphrase string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("path", path).Build()
	}

	if err := applyPragmas(db); err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}

	salt, err := loadOrCreateSalt(db)
	if err != nil {
		return nil, err
	}
	crypto, err := NewCrypto(passphrase, salt)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, crypto: crypto, logger: logging.ForService("notestore")}
	if err := s.seedDefaultFolder(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyPragmas(db *gorm.DB) error {
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL"} {
		if err := db.Exec(pragma).Error; err != nil {
			return errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
				Context("pragma", pragma).Build()
		}
	}
	return nil
}

func loadOrCreateSalt(db *gorm.DB) ([]byte, error) {
	var meta storeMeta
	err := db.Where("key = ?", kdfSaltKey).First(&meta).Error
	switch {
	case err == nil:
		salt, decodeErr := hex.DecodeString(meta.Value)
		if decodeErr != nil {
			return nil, errors.New(decodeErr).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
		}
		return salt, nil

	case stderrors.Is(err, gorm.ErrRecordNotFound):
		salt, genErr := GenerateSalt()
		if genErr != nil {
			return nil, genErr
		}
		meta = storeMeta{Key: kdfSaltKey, Value: hex.EncodeToString(salt)}
		if createErr := db.Create(&meta).Error; createErr != nil {
			return nil, errors.New(createErr).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
		}
		return salt, nil

	default:
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
}

func (s *Store) seedDefaultFolder() error {
	var count int64
	if err := s.db.Model(&Folder{}).Count(&count).Error; err != nil {
		return errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	if count > 0 {
		return nil
	}
	_, err := s.CreateFolder("General")
	return err
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}
	return sqlDB.Close()
}
