// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import "time"

// Info represents general information about the service.
type Info struct {
	ServiceName     string    `json:"service_name"`
	Version         string    `json:"version"`
	UptimeSince     time.Time `json:"uptime_since"`
	FFmpegAvailable bool      `json:"ffmpeg"`
	AuthConfigured  bool      `json:"auth_configured"`
}

// MediaType is the derived kind of a stored media file.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaRecord describes one stored file in a category bucket.
// ID is "<category>/<filename>" and is stable as long as the file exists.
type MediaRecord struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	Category     string    `json:"category"`
	Type         MediaType `json:"type"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Size         int64     `json:"size"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// MediaFilter narrows a media listing. Zero values mean "no filter".
type MediaFilter struct {
	Category string
	Type     MediaType
	Limit    int
}

// UploadResponse is returned by the upload endpoints.
type UploadResponse struct {
	Message  string        `json:"message"`
	Filename string        `json:"filename"`
	Files    []MediaRecord `json:"files"`
}

// NewsItem is a studio news post.
type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsCreatePayload is used for the POST /api/news request.
type NewsCreatePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image"`
}

// Visit is a single recorded page view.
type Visit struct {
	Path      string
	VisitedAt time.Time
}

// PathCount is the number of visits for one page.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// DayCount is the number of visits on one calendar day (UTC, YYYY-MM-DD).
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// VisitStats aggregates visits over a time window.
type VisitStats struct {
	Since  time.Time   `json:"since"`
	Total  int         `json:"total"`
	ByPath []PathCount `json:"by_path"`
	ByDay  []DayCount  `json:"by_day"`
}

// HousekeepingReport summarizes one cleanup run.
type HousekeepingReport struct {
	TempFilesRemoved        int    `json:"temp_files_removed"`
	OrphanThumbnailsRemoved int    `json:"orphan_thumbnails_removed"`
	BytesFreed              int64  `json:"bytes_freed"`
	Message                 string `json:"message"`
}
