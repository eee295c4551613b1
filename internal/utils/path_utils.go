// Package utils holds small path helpers shared across analysis layers.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/pynav/pynav/internal/config"
)

// HasSourceExt reports whether the path carries a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension, when present.
func TrimSourceExt(name string) string {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// ModuleName derives the display name of a module from its file path.
// Package init files take the containing directory's name.
func ModuleName(path string) string {
	if path == "" {
		return ""
	}
	dir, base := filepath.Split(filepath.ToSlash(path))
	base = TrimSourceExt(base)
	if base == config.InitFileName {
		base = filepath.Base(strings.TrimSuffix(dir, "/"))
	}
	return base
}
