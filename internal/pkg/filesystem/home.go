package filesystem

import (
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory holding preferences and data.
const AppDirName = ".addrbook"

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns ~/.addrbook.
func AppDir() string {
	return filepath.Join(UserHomeDir(), AppDirName)
}
