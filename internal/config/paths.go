package config

import (
	"os"
	"path/filepath"
)

// Dir returns the configuration directory path (~/.config/molview).
// It can be overridden with the MOLVIEW_CONFIG_DIR environment variable.
func Dir() string {
	if d := os.Getenv("MOLVIEW_CONFIG_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "molview")
	}
	return filepath.Join(home, ".config", "molview")
}

// ConfigFile returns the path to the config.yaml file.
func ConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// CatalogFile returns the default location of the user's molecule catalog.
func CatalogFile() string {
	return filepath.Join(Dir(), "catalog.yaml")
}

// DebugLogFile returns the path of the TUI debug log.
func DebugLogFile() string {
	return filepath.Join(Dir(), "debug.log")
}

// ResolvePath makes a relative path relative to the config directory.
func ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(Dir(), p)
}
