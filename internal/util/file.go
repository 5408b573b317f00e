package util

import (
	"os"
	"path/filepath"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// FirstExisting returns the first of paths that exists as a regular file.
func FirstExisting(paths ...string) (string, bool) {
	for _, p := range paths {
		if FileExists(p) {
			return p, true
		}
	}
	return "", false
}

// CreateTemp creates a temp file next to final so a later rename stays on
// one filesystem.
func CreateTemp(final string) (*os.File, error) {
	dir := filepath.Dir(final)
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}
	return os.CreateTemp(dir, "."+filepath.Base(final)+".*.part")
}

// CommitTemp closes f and renames it onto final. On any error the temp file
// is removed.
func CommitTemp(f *os.File, final string) error {
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), final); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}

// DiscardTemp closes and removes f. Safe on an already closed file.
func DiscardTemp(f *os.File) {
	f.Close()
	os.Remove(f.Name())
}
