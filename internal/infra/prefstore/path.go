package prefstore

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultStoreFileName = "preferences.db"

// ResolveDefaultPath returns the default location of the preferences database.
func ResolveDefaultPath() string {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		if dir, err := os.UserConfigDir(); err == nil && strings.TrimSpace(dir) != "" {
			base = dir
		}
	}
	if base == "" {
		base = "."
	}
	return filepath.Join(base, "tooldir", defaultStoreFileName)
}
