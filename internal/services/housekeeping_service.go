// filepath: internal/services/housekeeping_service.go
package services

import (
	"time"

	"inkhub/internal/housekeeping"
	"inkhub/internal/models"
)

var _ HousekeepingService = (*housekeepingService)(nil)

// housekeepingService manages the lifecycle of the background housekeeping
// worker and provides a method for manual triggering.
type housekeepingService struct {
	worker     *housekeeping.Service
	workerDeps housekeeping.Dependencies
	interval   time.Duration
}

// NewHousekeepingService creates a new HousekeepingService for the media root.
func NewHousekeepingService(root string, tempMaxAge, interval time.Duration) *housekeepingService {
	return &housekeepingService{
		workerDeps: housekeeping.Dependencies{Root: root, TempMaxAge: tempMaxAge},
		interval:   interval,
	}
}

// Start begins the background housekeeping worker.
func (s *housekeepingService) Start() {
	s.worker = housekeeping.NewService(s.workerDeps, s.interval)
	s.worker.Start()
}

// Stop terminates the background housekeeping worker.
func (s *housekeepingService) Stop() {
	if s.worker != nil {
		s.worker.Stop()
	}
}

// RunOnce manually runs the cleanup tasks.
func (s *housekeepingService) RunOnce() (*models.HousekeepingReport, error) {
	return housekeeping.Run(s.workerDeps)
}
