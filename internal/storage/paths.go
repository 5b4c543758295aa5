// Package storage maps categories to bucket directories on disk and writes
// uploaded files into them.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ThumbsDirName is the hidden directory under the storage root that mirrors
// the bucket layout for generated thumbnails.
const ThumbsDirName = ".thumbs"

// ThumbnailSuffix is appended to the source file name to form the
// thumbnail name.
const ThumbnailSuffix = ".jpg"

// ThumbnailSource returns the source file name for a thumbnail file name.
func ThumbnailSource(thumbName string) (string, bool) {
	if !strings.HasSuffix(thumbName, ThumbnailSuffix) || len(thumbName) == len(ThumbnailSuffix) {
		return "", false
	}
	return strings.TrimSuffix(thumbName, ThumbnailSuffix), true
}

// ThumbsDir returns the thumbnail directory mirroring category.
func ThumbsDir(root, category string) (string, error) {
	if err := ValidateCategory(category); err != nil {
		return "", err
	}
	return validatePath(root, filepath.Join(root, ThumbsDirName, category))
}

// MaxNameLength bounds category names.
const MaxNameLength = 64

// MaxFileNameBytes is the per-segment limit of common filesystems.
const MaxFileNameBytes = 255

// ErrInvalidName is returned for category or file names that could escape
// their bucket or would be hidden from listings.
var ErrInvalidName = errors.New("invalid name")

// ValidateName checks a single path segment (a category or a stored file name).
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > MaxFileNameBytes:
		return fmt.Errorf("%w: too long", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// ValidateCategory applies ValidateName plus the tighter category length limit.
func ValidateCategory(category string) error {
	if err := ValidateName(category); err != nil {
		return err
	}
	if len(category) > MaxNameLength {
		return fmt.Errorf("%w: category longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// validatePath makes sure p resolves to a location strictly below root.
func validatePath(root, p string) (string, error) {
	cleanedRoot := filepath.Clean(root)
	cleaned := filepath.Clean(p)
	rel, err := filepath.Rel(cleanedRoot, cleaned)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: potential path traversal", ErrInvalidName)
	}
	return cleaned, nil
}

// BucketDir returns the directory for category without creating it.
func BucketDir(root, category string) (string, error) {
	if err := ValidateCategory(category); err != nil {
		return "", err
	}
	return validatePath(root, filepath.Join(root, category))
}

// EnsureBucket returns the directory for category, creating it on first use.
func EnsureBucket(root, category string) (string, error) {
	dir, err := BucketDir(root, category)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create bucket directory: %w", err)
	}
	return dir, nil
}

// FilePath returns the path of filename inside the category bucket.
func FilePath(root, category, filename string) (string, error) {
	dir, err := BucketDir(root, category)
	if err != nil {
		return "", err
	}
	if err := ValidateName(filename); err != nil {
		return "", err
	}
	return validatePath(root, filepath.Join(dir, filename))
}

// ThumbnailPath returns where the thumbnail for category/filename lives.
// Thumbnails are always JPEG and keep the full source name, so koi.png and
// koi.jpg in one bucket get distinct thumbnails.
func ThumbnailPath(root, category, filename string) (string, error) {
	if err := ValidateCategory(category); err != nil {
		return "", err
	}
	if err := ValidateName(filename); err != nil {
		return "", err
	}
	return validatePath(root, filepath.Join(root, ThumbsDirName, category, filename+ThumbnailSuffix))
}
