// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates no config file exists in any search location.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./plexify.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "plexify", "config.toml")
}

// SearchPaths lists the locations Discover checks after PLEXIFY_CONFIG.
func SearchPaths() []string {
	return []string{
		"./plexify.toml",
		DefaultPath(),
		"/etc/plexify/config.toml",
	}
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. PLEXIFY_CONFIG environment variable
//  2. ./plexify.toml (current directory)
//  3. $XDG_CONFIG_HOME/plexify/config.toml
//  4. /etc/plexify/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv("PLEXIFY_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("PLEXIFY_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %v", ErrNotFound, paths)
}

// LoadDiscovered loads the discovered config, falling back to Default when
// no file exists. The returned path is empty for the built-in defaults.
func LoadDiscovered() (*Config, string, error) {
	path, err := Discover()
	if errors.Is(err, ErrNotFound) {
		return Default(), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
