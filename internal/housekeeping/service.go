// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"sync"
	"time"

	"inkhub/internal/logging"
)

const (
	// DefaultCheckInterval is used when no interval is configured.
	DefaultCheckInterval = 1 * time.Hour
	// MinCheckInterval is the minimum time between checks to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute
)

// Service provides the background worker for automated housekeeping.
type Service struct {
	Deps     Dependencies
	Interval time.Duration

	mu       sync.Mutex
	runs     int
	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewService creates a new housekeeping service instance.
func NewService(deps Dependencies, interval time.Duration) *Service {
	return &Service{
		Deps:     deps,
		Interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// nextInterval clamps the configured interval.
func (s *Service) nextInterval() time.Duration {
	if s.Interval <= 0 {
		return DefaultCheckInterval
	}
	if s.Interval < MinCheckInterval {
		return MinCheckInterval
	}
	return s.Interval
}

// Start kicks off the background housekeeping service.
func (s *Service) Start() {
	logging.Log.Info("Starting background housekeeping service.")
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.RunOnce()
				next := s.nextInterval()
				s.timer.Reset(next)
				logging.Log.Debugf("Next housekeeping check scheduled in %v.", next)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service. It is safe to call
// more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		logging.Log.Info("Stopping background housekeeping service.")
		close(s.stopCh)
	})
}

// RunOnce runs the cleanup tasks and logs the outcome.
func (s *Service) RunOnce() {
	report, err := Run(s.Deps)
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	if err != nil {
		logging.Log.Errorf("Housekeeping run failed: %v", err)
		return
	}
	logging.Log.Info(report.Message)
}

// Runs returns how many runs have completed.
func (s *Service) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
