package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/addrbook/internal/domain"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "preferences.yaml")

	prefs, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWindowWidth, prefs.GuiSettings.WindowWidth)
	assert.Equal(t, domain.DefaultWindowHeight, prefs.GuiSettings.WindowHeight)
	assert.Equal(t, filepath.Join(dir, "nested", "addressbook.json"), prefs.AddressBookFilePath)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	loader := NewFileLoader(filepath.Join(dir, "preferences.yaml"))

	original := domain.UserPrefs{
		GuiSettings: domain.GuiSettings{
			WindowWidth:  1024,
			WindowHeight: 768,
			WindowX:      10,
			WindowY:      20,
		},
		AddressBookFilePath: filepath.Join(dir, "data", "book.db"),
	}
	require.NoError(t, loader.Save(context.Background(), original))

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, original.GuiSettings, loaded.GuiSettings)
	assert.Equal(t, original.AddressBookFilePath, loaded.AddressBookFilePath)
	assert.Equal(t, domain.PrefsFormatVersion, loaded.PrefsFormatVersion)
}

func TestLoadHonoursEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	t.Setenv(EnvPrefsPath, path)

	loader := NewFileLoader("")
	assert.Equal(t, path, loader.Path())

	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gui: [unclosed"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse preferences")
}

func TestDefaultsMatchFreshLoad(t *testing.T) {
	dir := t.TempDir()
	loaded, err := NewFileLoader(filepath.Join(dir, "preferences.yaml")).Load(context.Background())
	require.NoError(t, err)

	defaults, err := Defaults(dir)
	require.NoError(t, err)
	assert.Equal(t, loaded, defaults)
}
