package domain

// UserPrefs mirrors ~/.addrbook/preferences.yaml.
type UserPrefs struct {
	PrefsFormatVersion  string      `yaml:"prefs_format_version"`
	GuiSettings         GuiSettings `yaml:"gui"`
	AddressBookFilePath string      `yaml:"address_book_file_path"`
}

// GuiSettings holds the last known window geometry.
type GuiSettings struct {
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
	WindowX      int `yaml:"window_x"`
	WindowY      int `yaml:"window_y"`
}
