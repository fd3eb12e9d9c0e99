package db

import (
	"fmt"

	"github.com/ramanasai/moodpulse/internal/encryption"
	"go.uber.org/zap"
)

// sealNote encrypts a note for storage when sealing is on. A note that is
// still sealed, because it could not be opened on read, is stored as is.
func (s *Store) sealNote(note string) (string, bool, error) {
	if encryption.IsEncrypted(note) {
		return note, true, nil
	}
	if !s.seal || note == "" {
		return note, false, nil
	}
	sealed, err := s.notes.Encrypt(note)
	if err != nil {
		return "", false, fmt.Errorf("failed to encrypt note: %w", err)
	}
	return sealed, true, nil
}

// openNote decrypts a stored note. Without an encryptor, or with one that
// cannot open it, the sealed text is kept so listings and reports still work;
// renderers show it as encrypted.
func (s *Store) openNote(id, note string, encrypted bool) string {
	if !encrypted {
		return note
	}
	if s.notes == nil {
		s.log.Debug("note left sealed", zap.String("id", id))
		return note
	}
	plain, err := s.notes.Decrypt(note)
	if err != nil {
		s.log.Warn("note left sealed, check the passphrase", zap.String("id", id), zap.Error(err))
		return note
	}
	return plain
}
