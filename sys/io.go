package sys

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Exists returns true if anything lives at the given path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// Mkdir creates a single directory level,
// tolerating someone else having created it meanwhile
func Mkdir(path string) error {
	return ErrSuppress(os.Mkdir(path, 0o755), fs.ErrExist)
}

// Within resolves path against root unless path is already absolute
func Within(root, path string) string {
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
