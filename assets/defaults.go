package assets

import (
	_ "embed"
)

// DefaultPreferencesYAML contains the embedded default user preferences.
//
//go:embed defaults/preferences.yaml
var DefaultPreferencesYAML []byte
