package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Exists reports whether anything is present at path. A present entry
// satisfies an artifact regardless of its content.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stat %s: %w", ErrIOFailure, path, err)
	}
}

// EnsureDir creates dir and its parents. A directory created concurrently by
// another writer counts as success.
func EnsureDir(dir string) error {
	err := os.MkdirAll(dir, 0o755)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return nil
	}
	return fmt.Errorf("%w: mkdir %s: %w", ErrIOFailure, dir, err)
}

// PublishExclusive writes data to path only if path does not exist yet.
// The bytes go to a temporary sibling first and are hard-linked into place,
// so readers never see a partial artifact and two writers racing on the same
// path produce exactly one winner. It reports whether this call created path.
func PublishExclusive(path string, data []byte) (bool, error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return false, err
	}

	tmp := filepath.Join(dir, tempPrefix+uuid.NewString()+tempSuffix)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("%w: write %s: %w", ErrIOFailure, tmp, err)
	}
	defer os.Remove(tmp)

	err := os.Link(tmp, path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: link %s: %w", ErrIOFailure, path, err)
	}
}

// Temporary names have a fixed length so that any name legal for the
// target is also publishable.
const (
	tempPrefix = ".fastdl-"
	tempSuffix = ".tmp"
)

// IsTempArtifact reports whether name is a PublishExclusive temporary file,
// either in flight or left behind by an interrupted run.
func IsTempArtifact(name string) bool {
	return strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix)
}

// LowerPath lowercases a relative path.
func LowerPath(rel string) string {
	return strings.ToLower(rel)
}

// IsLowerPath reports whether rel is already fully lowercase.
func IsLowerPath(rel string) bool {
	return LowerPath(rel) == rel
}

// IsDir reports whether path names a directory, following symlinks.
// A missing path is not an error.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stat %s: %w", ErrIOFailure, path, err)
	}
}
