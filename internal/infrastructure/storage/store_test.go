package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/ports"
)

func sampleSnapshot(t *testing.T) domain.AddressBookSnapshot {
	t.Helper()
	alice, err := domain.NewPerson("Alice Pauline", "94351253", "alice@example.com", "123, Jurong West Ave 6", []string{"friends"})
	require.NoError(t, err)
	benson, err := domain.NewPerson("Benson Meier", "98765432", "johnd@example.com", "311, Clementi Ave 2", []string{"owesMoney", "friends"})
	require.NoError(t, err)
	carl, err := domain.NewPerson("Carl Kurz", "95352563", "heinz@example.com", "wall street", nil)
	require.NoError(t, err)
	return domain.AddressBookSnapshot{
		Persons: []domain.Person{alice, benson, carl},
		Pinned:  []string{"Carl Kurz"},
	}
}

func assertSameSnapshot(t *testing.T, want, got domain.AddressBookSnapshot) {
	t.Helper()
	require.Len(t, got.Persons, len(want.Persons))
	for i := range want.Persons {
		assert.True(t, want.Persons[i].Equal(got.Persons[i]), "person %d: want %s, got %s", i, want.Persons[i], got.Persons[i])
	}
	assert.Equal(t, want.Pinned, got.Pinned)
}

func storesUnderTest(t *testing.T) map[string]ports.AddressBookStorage {
	t.Helper()
	dir := t.TempDir()
	sqliteStore, err := NewSQLiteStore(filepath.Join(dir, "book.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })
	return map[string]ports.AddressBookStorage{
		"json":   NewJSONFileStore(filepath.Join(dir, "data", "book.json")),
		"sqlite": sqliteStore,
	}
}

func TestStoresRoundTrip(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, found, err := store.Load(ctx)
			require.NoError(t, err)
			assert.False(t, found)

			want := sampleSnapshot(t)
			require.NoError(t, store.Save(ctx, want))

			got, found, err := store.Load(ctx)
			require.NoError(t, err)
			assert.True(t, found)
			assertSameSnapshot(t, want, got)
		})
	}
}

func TestStoresOverwriteOnSave(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, sampleSnapshot(t)))
			require.NoError(t, store.Save(ctx, domain.AddressBookSnapshot{}))

			got, found, err := store.Load(ctx)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Empty(t, got.Persons)
		})
	}
}

func TestJSONFileStoreSaveReplacesFileInPlace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	path := filepath.Join(dir, "book.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSnapshot(t)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
		require.NoError(t, os.Chmod(path, 0o640))
	}

	require.NoError(t, store.Save(ctx, domain.AddressBookSnapshot{}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "book.json", entries[0].Name())
	if runtime.GOOS != "windows" {
		info, err = os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm(), "existing mode is kept")
	}
}

func TestJSONFileStoreRejectsInvalidPerson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	data := `{"persons":[{"name":"  ","phone":"123","email":"a@ex.com","address":"x"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, _, err := NewJSONFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJSONFileStoreRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewJSONFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestOpenPicksAdapterByExtension(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(filepath.Join(dir, "book.sqlite"))
	require.NoError(t, err)
	sqliteStore, ok := store.(*SQLiteStore)
	require.True(t, ok, "expected *SQLiteStore, got %T", store)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	store, err = Open(filepath.Join(dir, "book.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONFileStore{}, store)
}
