package infra

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlcipher "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// SQLTapStore implements domain.TapStore on a SQLCipher encrypted SQLite
// database in the runtime data dir.
type SQLTapStore struct {
	db     *sql.DB
	dbPath string
}

// NewTapStore opens (or creates) the tap database at dbPath, keyed by key.
// A key that does not decrypt an existing database yields
// domain.ErrStoreKeyInvalid.
func NewTapStore(dbPath string, key []byte) (*SQLTapStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma_key=x'%s'&_pragma_cipher_page_size=4096", dbPath, hex.EncodeToString(key))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open tap database: %w", err)
	}

	// A wrong key only surfaces on first access.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, keyError(dbPath, fmt.Errorf("failed to connect to tap database: %w", err))
	}

	s := &SQLTapStore{db: db, dbPath: dbPath}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, keyError(dbPath, fmt.Errorf("failed to create tables: %w", err))
	}
	return s, nil
}

// OpenTapStore opens the store at layout.StorePath with the key kept at
// layout.KeyPath, creating both on first use.
func OpenTapStore(layout *Layout) (*SQLTapStore, error) {
	key, err := loadStoreKey(layout.KeyPath, layout.StorePath)
	if err != nil {
		return nil, err
	}
	store, err := NewTapStore(layout.StorePath, key)
	if errors.Is(err, domain.ErrStoreKeyInvalid) {
		return nil, fmt.Errorf("%w (key file %s)", err, layout.KeyPath)
	}
	return store, err
}

// keyError turns SQLite's "not a database" into domain.ErrStoreKeyInvalid.
func keyError(dbPath string, err error) error {
	var sqlErr sqlcipher.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == sqlcipher.ErrNotADB {
		return fmt.Errorf("%w: %s cannot be decrypted; restore its key or remove the database to start over",
			domain.ErrStoreKeyInvalid, dbPath)
	}
	return err
}

func (s *SQLTapStore) createTables() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS taps (
		name TEXT PRIMARY KEY,
		user TEXT NOT NULL,
		repo TEXT NOT NULL,
		remote TEXT NOT NULL,
		custom_remote INTEGER NOT NULL DEFAULT 0,
		path TEXT NOT NULL,
		added_at INTEGER NOT NULL
	);
	`)
	return err
}

// Get returns the tap by normalised name.
func (s *SQLTapStore) Get(name string) (*domain.Tap, error) {
	row := s.db.QueryRow(`SELECT name, user, repo, remote, custom_remote, path, added_at
		FROM taps WHERE name = ?`, name)
	tap, err := scanTap(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTapNotTapped, name)
	}
	if err != nil {
		return nil, err
	}
	return tap, nil
}

// Save inserts or replaces a tap.
func (s *SQLTapStore) Save(tap domain.Tap) error {
	if tap.AddedAt.IsZero() {
		tap.AddedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO taps (name, user, repo, remote, custom_remote, path, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tap.Name, tap.User, tap.Repo, tap.Remote, tap.CustomRemote, tap.Path, tap.AddedAt.Unix(),
	)
	return err
}

// Delete removes a tap.
func (s *SQLTapStore) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM taps WHERE name = ?`, name)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTapNotTapped, name)
	}
	return nil
}

// List returns all taps sorted by name.
func (s *SQLTapStore) List() ([]domain.Tap, error) {
	rows, err := s.db.Query(`SELECT name, user, repo, remote, custom_remote, path, added_at
		FROM taps ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taps := make([]domain.Tap, 0)
	for rows.Next() {
		tap, err := scanTap(rows)
		if err != nil {
			return nil, err
		}
		taps = append(taps, *tap)
	}
	return taps, rows.Err()
}

// Path returns the database file path.
func (s *SQLTapStore) Path() string {
	return s.dbPath
}

// Close releases the database connection.
func (s *SQLTapStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTap(row rowScanner) (*domain.Tap, error) {
	var tap domain.Tap
	var addedAt int64
	if err := row.Scan(&tap.Name, &tap.User, &tap.Repo, &tap.Remote, &tap.CustomRemote, &tap.Path, &addedAt); err != nil {
		return nil, err
	}
	tap.AddedAt = time.Unix(addedAt, 0)
	return &tap, nil
}

// Ensure SQLTapStore implements domain.TapStore.
var _ domain.TapStore = (*SQLTapStore)(nil)
