package api

import (
	"net/http"
	"os"
	"strings"
)

// storageFS hides directories and dot-entries (thumbnail cache, upload temp
// files) from http.FileServer.
type storageFS struct {
	fs http.FileSystem
}

func (s storageFS) Open(name string) (http.File, error) {
	for _, part := range strings.Split(strings.Trim(name, "/"), "/") {
		if strings.HasPrefix(part, ".") {
			return nil, os.ErrNotExist
		}
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
