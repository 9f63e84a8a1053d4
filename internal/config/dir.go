// Package config provides persisted settings and the configuration directory
// for ghnotes.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the ghnotes configuration directory.
//
// Resolution:
//   - $GHNOTES_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/ghnotes if set (respects XDG on any platform)
//   - %AppData%/ghnotes on Windows
//   - ~/.config/ghnotes on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GHNOTES_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ghnotes")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "ghnotes")
		}
	}

	// macOS and Linux: ~/.config/ghnotes
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ghnotes")
}
