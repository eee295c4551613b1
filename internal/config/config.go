// Package config holds the workspace configuration and the project-wide
// naming constants.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// SearchPaths are import roots relative to the project root, tried in
	// order after the importing file's own directory.
	SearchPaths []string `yaml:"search_paths"`
	// Extensions override the recognized source file extensions.
	Extensions []string `yaml:"extensions"`
	// CachePath is the module-path index database file, relative to the
	// project root. Empty disables the index.
	CachePath string `yaml:"cache_path"`
	// ExcludeDirs are directory names skipped during workspace scans.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// Load reads the workspace configuration from root. A missing config file
// is not an error; defaults apply.
func Load(root string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if len(cfg.SearchPaths) == 0 {
		cfg.SearchPaths = []string{"."}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = SourceFileExtensions
	}
	if len(cfg.ExcludeDirs) == 0 {
		cfg.ExcludeDirs = []string{".git", "__pycache__", "node_modules", ".venv", "venv"}
	}
	return cfg, nil
}
