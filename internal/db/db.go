package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ramanasai/moodpulse/internal/encryption"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

const currentVersion = 1

// Store is the SQLite-backed journal.Store.
type Store struct {
	db    *sql.DB
	notes *encryption.Encryptor
	seal  bool
	log   *zap.Logger
}

type Option func(*Store)

// WithLogger attaches a logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l.Named("db")
		}
	}
}

// WithEncryptor decrypts sealed notes on read. When seal is true new and
// edited notes are also sealed on write.
func WithEncryptor(enc *encryption.Encryptor, seal bool) Option {
	return func(s *Store) {
		s.notes = enc
		s.seal = seal && enc != nil
	}
}

// AppDataDir returns ~/.local/share/moodpulse, creating it.
func AppDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	base := filepath.Join(home, ".local", "share", "moodpulse")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return base, nil
}

// DefaultPath is the database file under AppDataDir.
func DefaultPath() (string, error) {
	dir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "moodpulse.db"), nil
}

// Open opens (or creates) the database at path and applies migrations.
func Open(path string, opts ...Option) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = fmt.Sprintf(
			"file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
			path,
		)
	}

	dbh, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	dbh.SetMaxOpenConns(1)

	s := &Store{db: dbh, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		_ = dbh.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.log.Debug("database opened", zap.String("path", path))
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory(opts ...Option) (*Store, error) {
	return Open(":memory:", opts...)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}
