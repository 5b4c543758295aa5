// filepath: internal/api/handlers/main.go
package handlers

import (
	"inkhub/internal/config"
	"inkhub/internal/services"
	"inkhub/internal/services/auth"
)

// Handlers provides a struct to hold shared dependencies for API handlers.
type Handlers struct {
	Info         services.InfoService
	Token        auth.TokenService
	Upload       services.UploadService
	Media        services.MediaStore
	News         services.NewsStore
	Visits       services.VisitService
	Housekeeping services.HousekeepingService
	Auditor      services.Auditor

	Cfg *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	token auth.TokenService,
	upload services.UploadService,
	media services.MediaStore,
	news services.NewsStore,
	visits services.VisitService,
	housekeeping services.HousekeepingService,
	auditor services.Auditor,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Info:         info,
		Token:        token,
		Upload:       upload,
		Media:        media,
		News:         news,
		Visits:       visits,
		Housekeeping: housekeeping,
		Auditor:      auditor,
		Cfg:          cfg,
	}
}
