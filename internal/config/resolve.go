package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPaths returns the search order for config files.
func DefaultConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "medalrun", "config.yaml"))
	}
	paths = append(paths, "/etc/medalrun/config.yaml")
	return paths
}

// Resolve loads the config from the given explicit path, or searches the
// default locations. When nothing is found it falls back to Default(), so a
// bare `medalrun run` works without any config file. It fills in Hostname
// from os.Hostname() if empty.
func Resolve(explicit string) (*Config, error) {
	cfg, err := resolveFile(explicit)
	if err != nil {
		return nil, err
	}

	if cfg.Hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("resolving hostname: %w", err)
		}
		cfg.Hostname = h
	}

	return cfg, nil
}

func resolveFile(explicit string) (*Config, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file not found: %s", explicit)
		}
		return Load(explicit)
	}

	for _, p := range DefaultConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}
