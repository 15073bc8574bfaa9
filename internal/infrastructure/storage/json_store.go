package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/ports"
)

// JSONFileStore keeps the address book in a single JSON document.
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore creates a store backed by path.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Load implements ports.AddressBookStorage.
func (f *JSONFileStore) Load(context.Context) (domain.AddressBookSnapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.AddressBookSnapshot{}, false, nil
		}
		return domain.AddressBookSnapshot{}, false, err
	}
	var book storedAddressBook
	if err := json.Unmarshal(data, &book); err != nil {
		return domain.AddressBookSnapshot{}, false, fmt.Errorf("decode %s: %w", f.path, err)
	}
	snapshot, err := book.toSnapshot()
	if err != nil {
		return domain.AddressBookSnapshot{}, false, fmt.Errorf("load %s: %w", f.path, err)
	}
	return snapshot, true, nil
}

// Save implements ports.AddressBookStorage. The file is replaced atomically.
func (f *JSONFileStore) Save(_ context.Context, snapshot domain.AddressBookSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.MarshalIndent(fromSnapshot(snapshot), "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(f.path, append(data, '\n'))
}

// Path returns the backing file path.
func (f *JSONFileStore) Path() string {
	return f.path
}

// writeFileAtomic replaces path with data through a synced temp file in the
// same directory. New files are created 0600; existing files keep their mode.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var _ ports.AddressBookStorage = (*JSONFileStore)(nil)
