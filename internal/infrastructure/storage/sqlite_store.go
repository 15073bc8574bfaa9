package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/ports"
)

// SQLiteStore persists the address book in a SQLite database, one row per
// person ordered by position. Save replaces every row in one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS persons (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		pinned INTEGER NOT NULL DEFAULT 0
	);`)
	if err != nil {
		return fmt.Errorf("create persons table: %w", err)
	}
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}
	return nil
}

// Load implements ports.AddressBookStorage. found is false until the first Save.
func (s *SQLiteStore) Load(ctx context.Context) (domain.AddressBookSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var saved string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'saved'`).Scan(&saved)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AddressBookSnapshot{}, false, nil
	}
	if err != nil {
		return domain.AddressBookSnapshot{}, false, fmt.Errorf("read meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, phone, email, address, tags, pinned FROM persons ORDER BY position`)
	if err != nil {
		return domain.AddressBookSnapshot{}, false, fmt.Errorf("select persons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var book storedAddressBook
	for rows.Next() {
		var sp storedPerson
		var tags string
		var pinned int
		if err := rows.Scan(&sp.Name, &sp.Phone, &sp.Email, &sp.Address, &tags, &pinned); err != nil {
			return domain.AddressBookSnapshot{}, false, fmt.Errorf("scan: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &sp.Tags); err != nil {
			return domain.AddressBookSnapshot{}, false, fmt.Errorf("decode tags of %s: %w", sp.Name, err)
		}
		sp.Pinned = pinned == 1
		book.Persons = append(book.Persons, sp)
	}
	if err := rows.Err(); err != nil {
		return domain.AddressBookSnapshot{}, false, err
	}

	snapshot, err := book.toSnapshot()
	if err != nil {
		return domain.AddressBookSnapshot{}, false, fmt.Errorf("load %s: %w", s.path, err)
	}
	return snapshot, true, nil
}

// Save implements ports.AddressBookStorage.
func (s *SQLiteStore) Save(ctx context.Context, snapshot domain.AddressBookSnapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM persons`); err != nil {
		return fmt.Errorf("clear persons: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO persons
		(position, name, phone, email, address, tags, pinned)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, sp := range fromSnapshot(snapshot).Persons {
		tags, err := json.Marshal(nonNil(sp.Tags))
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, i, sp.Name, sp.Phone, sp.Email, sp.Address, string(tags), boolToInt(sp.Pinned)); err != nil {
			return fmt.Errorf("insert %s: %w", sp.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('saved', '1') ON CONFLICT(key) DO UPDATE SET value = excluded.value`); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return tx.Commit()
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Open picks the adapter from the file extension: .db and .sqlite use
// SQLite, anything else the JSON file store.
func Open(path string) (ports.AddressBookStorage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return NewJSONFileStore(path), nil
	}
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.AddressBookStorage = (*SQLiteStore)(nil)
