package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doeshing/addrbook/internal/domain"
)

// Validate ensures the preferences are usable.
func Validate(prefs domain.UserPrefs) error {
	if err := validateGui(prefs.GuiSettings); err != nil {
		return err
	}
	return validateDataPath(prefs.AddressBookFilePath)
}

func validateGui(gui domain.GuiSettings) error {
	if gui.WindowWidth <= 0 {
		return fmt.Errorf("gui.window_width must be > 0, got %d", gui.WindowWidth)
	}
	if gui.WindowHeight <= 0 {
		return fmt.Errorf("gui.window_height must be > 0, got %d", gui.WindowHeight)
	}
	return nil
}

func validateDataPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("address_book_file_path must be set")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".db", ".sqlite":
	default:
		return fmt.Errorf("address_book_file_path must end in .json, .db or .sqlite, got %s", path)
	}
	return nil
}
