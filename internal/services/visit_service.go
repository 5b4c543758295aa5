package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkhub/internal/models"

	"github.com/patrickmn/go-cache"
)

const (
	// VisitDedupeWindow is how long a repeat hit from the same client on the
	// same path is ignored.
	VisitDedupeWindow = 30 * time.Minute
	// visitStatsTTL is how long aggregated statistics are reused.
	visitStatsTTL = time.Minute
	// MaxStatsDays bounds the statistics window.
	MaxStatsDays = 366
	// maxVisitPathLength rejects junk paths.
	maxVisitPathLength = 512
)

// VisitRepository is the persistence needed by the visit service.
type VisitRepository interface {
	InsertVisit(ctx context.Context, v models.Visit) error
	VisitStats(ctx context.Context, since time.Time) (*models.VisitStats, error)
}

var _ VisitService = (*visitService)(nil)

type visitService struct {
	Repo  VisitRepository
	seen  *cache.Cache
	stats *cache.Cache
	now   func() time.Time
}

// NewVisitService creates a VisitService on top of repo.
func NewVisitService(repo VisitRepository) *visitService {
	return &visitService{
		Repo:  repo,
		seen:  cache.New(VisitDedupeWindow, 10*time.Minute),
		stats: cache.New(visitStatsTTL, 5*time.Minute),
		now:   time.Now,
	}
}

// normalizeVisitPath checks and canonicalizes a reported page path.
func normalizeVisitPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: path is required", ErrValidation)
	}
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: path must start with '/'", ErrValidation)
	}
	if len(path) > maxVisitPathLength {
		return "", fmt.Errorf("%w: path too long", ErrValidation)
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path, nil
}

// Record stores a visit unless the client hit the same path within
// VisitDedupeWindow.
func (s *visitService) Record(ctx context.Context, clientKey, path string) (bool, error) {
	path, err := normalizeVisitPath(path)
	if err != nil {
		return false, err
	}

	key := clientKey + "|" + path
	if err := s.seen.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
		// Already present: a repeat inside the window.
		return false, nil
	}

	if err := s.Repo.InsertVisit(ctx, models.Visit{Path: path, VisitedAt: s.now()}); err != nil {
		s.seen.Delete(key)
		return false, err
	}
	return true, nil
}

// Stats aggregates visits over the last days calendar days (UTC), today
// included.
func (s *visitService) Stats(ctx context.Context, days int) (*models.VisitStats, error) {
	if days < 1 || days > MaxStatsDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrValidation, MaxStatsDays)
	}

	since := s.now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -(days - 1))
	key := fmt.Sprintf("%d", since.Unix())
	if cached, ok := s.stats.Get(key); ok {
		return cached.(*models.VisitStats), nil
	}

	stats, err := s.Repo.VisitStats(ctx, since)
	if err != nil {
		return nil, err
	}
	s.stats.Set(key, stats, cache.DefaultExpiration)
	return stats, nil
}
