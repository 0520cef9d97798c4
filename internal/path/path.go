// Package path normalises filesystem paths before they enter the catalog.
//
// The catalog keys every edge by path string, so two spellings of the same
// file ("~/v.mkv", "/home/u/./v.mkv") must collapse to one key or the file
// would be tracked twice. Every path from the CLI, the MCP server and import
// files passes through Normalise.
//
// Normalisation rules:
//   - A leading "~" or "~/" expands to the user's home directory
//   - Relative paths are resolved against the working directory
//   - The result is cleaned (no "." or ".." components, no trailing slash)
//   - Empty paths are rejected
//
// Symlinks are not resolved: a link is catalogued under its own name, the
// same way the reconciler discovers it.
package path

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalid indicates the provided path is invalid.
var ErrInvalid = errors.New("invalid path")

// homeDir is swapped out by tests.
var homeDir = os.UserHomeDir

// Normalise returns the absolute, cleaned form of p.
func Normalise(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrInvalid
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Within reports whether p is root itself or lies anywhere beneath it.
// Both arguments should already be normalised.
func Within(p, root string) bool {
	if p == root {
		return true
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Direct reports whether p is an immediate child of dir.
//
// Examples (dir="/media"):
//   - "/media/a.mkv" -> true
//   - "/media/shows/b.mkv" -> false
//   - "/other/a.mkv" -> false
func Direct(p, dir string) bool {
	return filepath.Dir(p) == filepath.Clean(dir)
}
