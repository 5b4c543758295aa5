package services

import (
	"context"
	"time"

	"inkhub/internal/logging"
	"inkhub/internal/models"
	"inkhub/internal/repository"
)

var _ NewsStore = (*SQLNewsStore)(nil)

// SQLNewsStore keeps news items in the sqlite database.
type SQLNewsStore struct {
	Repo *repository.Repository
	now  func() time.Time
}

// NewSQLNewsStore creates a NewsStore backed by repo.
func NewSQLNewsStore(repo *repository.Repository) *SQLNewsStore {
	return &SQLNewsStore{Repo: repo, now: time.Now}
}

func (s *SQLNewsStore) List(ctx context.Context, order NewsOrder) ([]models.NewsItem, error) {
	return s.Repo.ListNews(ctx, order == NewsOrderDesc)
}

func (s *SQLNewsStore) Add(ctx context.Context, payload models.NewsCreatePayload) (*models.NewsItem, error) {
	item, err := newNewsItem(payload, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Repo.InsertNews(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *SQLNewsStore) Delete(ctx context.Context, id string) error {
	n, err := s.Repo.DeleteNews(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		logging.Log.Debugf("News item %s not found, nothing to delete", id)
	}
	return nil
}
