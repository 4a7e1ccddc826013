package notestore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/tphakala/lecturenotes/internal/errors"
)

const (
	nonceSize = 12
	saltSize  = 16
	keyLen    = 32

	argonTime    = 1
	argonMemKiB  = 64 * 1024
	argonThreads = 4
)

// Crypto wraps AES-256-GCM keyed by an Argon2id-derived key. Ciphertext
// produced by Encrypt is nonce (12 bytes) || ciphertext || gcm tag (16
// bytes) — cipher.Seal appends the tag to the ciphertext itself, so the
// layout falls out of a plain prepend of the nonce.
type Crypto struct {
	gcm cipher.AEAD
}

// NewCrypto derives a 256-bit key from passphrase and salt via Argon2id
// and returns a ready-to-use Crypto.
func NewCrypto(passphrase string, salt []byte) (*Crypto, error) {
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemKiB, argonThreads, keyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryGeneric).Build()
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryGeneric).Build()
	}
	return &Crypto{gcm: gcm}, nil
}

// GenerateSalt returns a fresh random salt for a new database.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryGeneric).Build()
	}
	return salt, nil
}

// Encrypt returns nonce || ciphertext || tag for plaintext.
func (c *Crypto) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryGeneric).Build()
	}
	sealed := c.gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Decrypt reverses Encrypt, returning an error if the layout is too short
// or authentication fails (wrong key, corrupted data, or a real tamper
// attempt).
func (c *Crypto) Decrypt(data []byte) ([]byte, error) {
	if len(data) < nonceSize {
		return nil, errors.Newf("ciphertext shorter than nonce").
			Component(componentNotestore).Category(errors.CategoryValidation).Build()
	}
	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryGeneric).Build()
	}
	return plaintext, nil
}
