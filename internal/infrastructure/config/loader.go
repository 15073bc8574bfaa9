package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/addrbook/assets"
	"github.com/doeshing/addrbook/internal/domain"
	"github.com/doeshing/addrbook/internal/pkg/filesystem"
	"github.com/doeshing/addrbook/internal/ports"
)

// EnvPrefsPath overrides the preferences file location.
const EnvPrefsPath = "ADDRBOOK_PREFS"

// FileLoader loads YAML preferences from ~/.addrbook/preferences.yaml (overridable via ADDRBOOK_PREFS).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.PrefsStore. A missing file is created from the embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.UserPrefs, error) {
	path := l.Path()
	if err := ensurePrefsDir(path); err != nil {
		return domain.UserPrefs{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.UserPrefs{}, fmt.Errorf("read preferences: %w", err)
		}
		data = assets.DefaultPreferencesYAML
		if err := os.WriteFile(path, data, domain.SecureFilePermissions); err != nil {
			return domain.UserPrefs{}, fmt.Errorf("write default preferences: %w", err)
		}
	}

	var prefs domain.UserPrefs
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return domain.UserPrefs{}, fmt.Errorf("parse preferences %s: %w", path, err)
	}

	return hydrateDefaults(prefs, filepath.Dir(path)), nil
}

// Save implements ports.PrefsStore.
func (l *FileLoader) Save(_ context.Context, prefs domain.UserPrefs) error {
	path := l.Path()
	if err := ensurePrefsDir(path); err != nil {
		return err
	}
	if prefs.PrefsFormatVersion == "" {
		prefs.PrefsFormatVersion = domain.PrefsFormatVersion
	}
	raw, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Defaults returns the embedded default preferences as Load would resolve
// them for a preferences file in baseDir.
func Defaults(baseDir string) (domain.UserPrefs, error) {
	var prefs domain.UserPrefs
	if err := yaml.Unmarshal(assets.DefaultPreferencesYAML, &prefs); err != nil {
		return domain.UserPrefs{}, fmt.Errorf("parse default preferences: %w", err)
	}
	return hydrateDefaults(prefs, baseDir), nil
}

// Path resolves the preferences file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvPrefsPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "preferences.yaml")
}

func ensurePrefsDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func hydrateDefaults(prefs domain.UserPrefs, baseDir string) domain.UserPrefs {
	if prefs.PrefsFormatVersion == "" {
		prefs.PrefsFormatVersion = domain.PrefsFormatVersion
	}
	if prefs.GuiSettings.WindowWidth <= 0 {
		prefs.GuiSettings.WindowWidth = domain.DefaultWindowWidth
	}
	if prefs.GuiSettings.WindowHeight <= 0 {
		prefs.GuiSettings.WindowHeight = domain.DefaultWindowHeight
	}
	if prefs.AddressBookFilePath == "" {
		prefs.AddressBookFilePath = domain.DefaultAddressBookFile
	}
	prefs.AddressBookFilePath = expandPath(prefs.AddressBookFilePath)
	if !filepath.IsAbs(prefs.AddressBookFilePath) {
		prefs.AddressBookFilePath = filepath.Join(baseDir, prefs.AddressBookFilePath)
	}
	return prefs
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.PrefsStore = (*FileLoader)(nil)
