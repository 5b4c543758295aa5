// filepath: internal/api/handlers/media_handler.go
package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"inkhub/internal/logging"
	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/gorilla/mux"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temp files.
const multipartMemory = 32 << 20

// @Summary Upload media
// @Description Upload one or more files into a category bucket. Each "file" part goes through the upload pipeline in order; the first failure aborts the remaining parts. HEIC/HEIF images are converted to JPEG.
// @Tags Media
// @Accept   multipart/form-data
// @Produce  json
// @Param   category  formData  string  true  "Target category (bucket)"
// @Param   file      formData  file    true  "Media file (repeatable)"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} ErrorResponse "Missing file or category"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 413 {object} ErrorResponse "Upload too large"
// @Failure 415 {object} ErrorResponse "Unsupported media type"
// @Failure 500 {object} ErrorResponse "Upload failed"
// @Security BearerAuth
// @Router /upload [post]
// @Router /media/upload [post]
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if h.Cfg != nil && h.Cfg.MaxUploadSizeBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSizeBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds the limit of %d bytes", tooLarge.Limit))
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	category := strings.TrimSpace(r.FormValue("category"))
	if category == "" {
		respondWithError(w, http.StatusBadRequest, "Missing category")
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		respondWithError(w, http.StatusBadRequest, "Missing file")
		return
	}

	stored := make([]models.MediaRecord, 0, len(files))
	for _, fh := range files {
		rec, err := h.uploadPart(r, fh, category)
		if err != nil {
			if len(stored) > 0 {
				logging.Log.Warnf("Upload aborted after %d of %d files: %v", len(stored), len(files), err)
			}
			respondWithServiceError(w, err, "Upload")
			return
		}
		stored = append(stored, *rec)
	}

	respondWithJSON(w, http.StatusOK, models.UploadResponse{
		Message:  fmt.Sprintf("Uploaded %d file(s) to %s", len(stored), category),
		Filename: stored[0].Filename,
		Files:    stored,
	})
}

func (h *Handlers) uploadPart(r *http.Request, fh *multipart.FileHeader, category string) (*models.MediaRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload part: %w", err)
	}
	defer f.Close()

	return h.Upload.Upload(r.Context(), services.UploadInput{
		Reader:   f,
		Filename: fh.Filename,
		Category: category,
	})
}

// @Summary List media
// @Description List stored media, newest first. Filter by category (alias "style"), type and limit.
// @Tags Media
// @Produce  json
// @Param   category  query  string  false  "Category"
// @Param   style     query  string  false  "Alias for category"
// @Param   type      query  string  false  "image or video"
// @Param   limit     query  int     false  "Maximum number of records"
// @Success 200 {array} models.MediaRecord
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 500 {object} ErrorResponse "Listing failed"
// @Router /media [get]
func (h *Handlers) ListMedia(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.MediaFilter{Category: q.Get("category")}
	if filter.Category == "" {
		filter.Category = q.Get("style")
	}

	switch t := models.MediaType(strings.ToLower(q.Get("type"))); t {
	case "":
	case models.MediaImage, models.MediaVideo:
		filter.Type = t
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid type: expected image or video")
		return
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	records, err := h.Media.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err, "Listing")
		return
	}
	if records == nil {
		records = []models.MediaRecord{}
	}
	respondWithJSON(w, http.StatusOK, records)
}

// @Summary List categories
// @Description List the categories that currently hold at least one file.
// @Tags Media
// @Produce  json
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse "Listing failed"
// @Router /media/categories [get]
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Media.Categories(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "Listing")
		return
	}
	if cats == nil {
		cats = []string{}
	}
	respondWithJSON(w, http.StatusOK, cats)
}

// @Summary Delete media
// @Description Remove a stored file and its thumbnail. Deleting a file that does not exist succeeds.
// @Tags Media
// @Param   category  path  string  true  "Category"
// @Param   filename  path  string  true  "Filename"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid name"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Delete failed"
// @Security BearerAuth
// @Router /media/{category}/{filename} [delete]
func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, filename := vars["category"], vars["filename"]

	if err := h.Media.Delete(r.Context(), category, filename); err != nil {
		respondWithServiceError(w, err, "Delete")
		return
	}

	h.audit(r, "media.delete", category+"/"+filename, nil)
	w.WriteHeader(http.StatusNoContent)
}
