package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for user files (rw-------)
	SecureFilePermissions = 0o600
)

// Window geometry defaults
const (
	DefaultWindowWidth  = 740
	DefaultWindowHeight = 600
)

// Storage constants
const (
	// DefaultAddressBookFile is the data file name under ~/.addrbook
	DefaultAddressBookFile = "addressbook.json"
	// PrefsFormatVersion is written into new preference files
	PrefsFormatVersion = "1"
)
