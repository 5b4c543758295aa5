// internal/web/web.go
// Package web serves the built single-page frontend from disk.
package web

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"inkhub/internal/logging"

	"github.com/gorilla/mux"
)

// spaHandler serves a single-page application from a filesystem.
// Unknown paths get the index so client-side routes resolve.
type spaHandler struct {
	contentFS fs.FS
	indexPath string // e.g., "index.html"
}

// ServeHTTP handles serving the SPA.
func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Use 'path.Clean' for FS paths, not 'filepath.Clean'
	filePath := path.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if filePath == "" || filePath == "." || filePath == "/" {
		filePath = h.indexPath
	}

	file, err := h.contentFS.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			h.serveIndex(w, r)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		logging.Log.Errorf("spaHandler error opening file %s: %v", filePath, err)
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		logging.Log.Errorf("spaHandler error stating file %s: %v", filePath, err)
		return
	}
	if fileInfo.IsDir() {
		h.serveIndex(w, r)
		return
	}

	seeker, ok := file.(io.ReadSeeker)
	if !ok {
		fileBytes, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			logging.Log.Errorf("spaHandler error reading file %s: %v", filePath, err)
			return
		}
		http.ServeContent(w, r, filePath, fileInfo.ModTime(), bytes.NewReader(fileBytes))
		return
	}

	http.ServeContent(w, r, filePath, fileInfo.ModTime(), seeker)
}

func (h spaHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	indexBytes, err := fs.ReadFile(h.contentFS, h.indexPath)
	if err != nil {
		http.Error(w, "Internal server error: index.html not found", http.StatusInternalServerError)
		logging.Log.Errorf("spaHandler could not read %s: %v", h.indexPath, err)
		return
	}
	http.ServeContent(w, r, h.indexPath, time.Time{}, bytes.NewReader(indexBytes))
}

// NewHandler returns a handler serving the SPA in contentFS.
func NewHandler(contentFS fs.FS, indexPath string) http.Handler {
	return spaHandler{contentFS: contentFS, indexPath: indexPath}
}

// AddRoutes mounts the frontend found in webRoot as the router's catch-all.
func AddRoutes(router *mux.Router, webRoot string, indexPath string) {
	if _, err := os.Stat(webRoot); err != nil {
		logging.Log.Warnf("Web root %s is not readable, frontend disabled: %v", webRoot, err)
		return
	}
	logging.Log.Infof("Serving frontend from %s", webRoot)
	router.PathPrefix("/").Handler(NewHandler(os.DirFS(webRoot), indexPath))
}
