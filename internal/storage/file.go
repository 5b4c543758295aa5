package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TempPrefix marks in-flight uploads. Listings skip dot-files, so a partial
// write is never visible under its final name.
const TempPrefix = ".upload-"

// IsTempFile reports whether name is an in-flight upload.
func IsTempFile(name string) bool {
	return strings.HasPrefix(name, TempPrefix)
}

// SaveFile streams fileData into dir/name. The data is written to a temp file
// in the same directory first and renamed into place, replacing any existing
// file of that name.
func SaveFile(fileData io.Reader, dir, name string) (int64, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, TempPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}
	tmpName := tmp.Name()

	fileSize, err := io.Copy(tmp, fileData)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("could not write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("could not close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("could not set file mode: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("could not move file into place: %w", err)
	}
	return fileSize, nil
}

// TempPath reserves an empty temp file in dir for writers that need a path
// rather than a writer (e.g. ffmpeg). The caller removes it.
func TempPath(dir string) (string, error) {
	tmp, err := os.CreateTemp(dir, TempPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("could not create temp file: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	return name, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoveIfEmpty deletes dir when it has no entries left.
func RemoveIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	return os.Remove(dir)
}
