package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrExists is returned when a new entry would replace an existing one.
	ErrExists = errors.New("already exists")

	// ErrInvalidName is returned for names that are empty or contain a path.
	ErrInvalidName = errors.New("invalid name")
)

const dirMode fs.FileMode = 0o755

// validName rejects names that would escape the target directory.
func validName(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// documentName appends the default Markdown extension to names without one.
func documentName(name string) string {
	if filepath.Ext(name) == "" {
		return name + DefaultExtensions[0]
	}
	return name
}

// CreateFile creates an empty document called name in dir and returns its
// path. ".md" is appended when name has no extension.
func CreateFile(dir, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}

	path := filepath.Join(dir, documentName(name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// CreateDir creates a directory called name in dir and returns its path.
func CreateDir(dir, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	err := os.Mkdir(path, dirMode)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return "", fmt.Errorf("create directory %s: %w", path, err)
	}
	return path, nil
}

// Rename gives the file or directory at path a new name in the same
// directory and returns the new path. Documents keep a Markdown extension.
func Rename(path, newName string) (string, error) {
	if err := validName(newName); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}
	if !info.IsDir() {
		newName = documentName(newName)
	}

	target := filepath.Join(filepath.Dir(path), newName)
	if target == path {
		return path, nil
	}
	if _, err := os.Lstat(target); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, target)
	}
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}
	return target, nil
}
