// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"io"

	"inkhub/internal/models"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "media.upload", "news.delete")
	// actor: who did it (the token role, or "anonymous")
	// resource: what was affected (e.g., "oldschool/koi.jpg", "news:01J...")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// UploadInput is one file submitted to the upload pipeline.
type UploadInput struct {
	Reader   io.Reader
	Filename string
	Category string
}

// UploadService runs the upload pipeline: normalize, classify, convert, store.
type UploadService interface {
	Upload(ctx context.Context, in UploadInput) (*models.MediaRecord, error)
}

// MediaStore persists media files in category buckets.
type MediaStore interface {
	Save(ctx context.Context, category, filename string, data io.Reader) (*models.MediaRecord, error)
	Exists(category, filename string) (bool, error)
	List(ctx context.Context, filter models.MediaFilter) ([]models.MediaRecord, error)
	Categories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, category, filename string) error
	Open(category, filename string) (io.ReadCloser, error)
}

// NewsOrder selects the listing order of news items.
type NewsOrder string

const (
	NewsOrderAsc  NewsOrder = "asc"
	NewsOrderDesc NewsOrder = "desc"
)

// NewsStore persists news items.
type NewsStore interface {
	List(ctx context.Context, order NewsOrder) ([]models.NewsItem, error)
	Add(ctx context.Context, payload models.NewsCreatePayload) (*models.NewsItem, error)
	Delete(ctx context.Context, id string) error
}

// VisitService records page views and aggregates them for the admin area.
type VisitService interface {
	// Record stores a visit unless the same client already hit the same
	// path recently. It reports whether the visit was counted.
	Record(ctx context.Context, clientKey, path string) (bool, error)
	Stats(ctx context.Context, days int) (*models.VisitStats, error)
}

// HousekeepingService defines the interface for the background cleanup.
type HousekeepingService interface {
	Start()
	Stop()
	RunOnce() (*models.HousekeepingReport, error)
}
