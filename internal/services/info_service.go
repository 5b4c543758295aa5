// filepath: internal/services/info_service.go
package services

import (
	"time"

	"inkhub/internal/models"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version         string
	StartTime       time.Time
	FFmpegAvailable bool
	AuthConfigured  bool
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time, ffmpegAvailable bool, authConfigured bool) *infoService {
	return &infoService{
		Version:         version,
		StartTime:       startTime,
		FFmpegAvailable: ffmpegAvailable,
		AuthConfigured:  authConfigured,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName:     "inkhub API",
		Version:         s.Version,
		UptimeSince:     s.StartTime,
		FFmpegAvailable: s.FFmpegAvailable,
		AuthConfigured:  s.AuthConfigured,
	}
}
