package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"inkhub/internal/logging"
	"inkhub/internal/models"
	"inkhub/internal/storage"

	"github.com/oklog/ulid/v2"
)

// ParseNewsOrder parses the "order" query value. Empty means insertion order.
func ParseNewsOrder(s string) (NewsOrder, error) {
	switch NewsOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", NewsOrderAsc:
		return NewsOrderAsc, nil
	case NewsOrderDesc:
		return NewsOrderDesc, nil
	default:
		return "", fmt.Errorf("%w: order must be 'asc' or 'desc'", ErrValidation)
	}
}

// newNewsItem validates payload and builds the item to persist.
func newNewsItem(payload models.NewsCreatePayload, now time.Time) (models.NewsItem, error) {
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return models.NewsItem{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	return models.NewsItem{
		ID:        ulid.Make().String(),
		Title:     title,
		Body:      payload.Body,
		Image:     strings.TrimSpace(payload.Image),
		CreatedAt: now.UTC(),
	}, nil
}

var _ NewsStore = (*JSONNewsStore)(nil)

// JSONNewsStore keeps all news items as a JSON array in a single file.
// Writes are serialized and replace the file atomically.
type JSONNewsStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewJSONNewsStore opens the store at path, creating an empty list file if
// none exists yet.
func NewJSONNewsStore(path string) (*JSONNewsStore, error) {
	s := &JSONNewsStore{path: path, now: time.Now}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create news directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Log.Infof("News file %s not found, creating an empty list", path)
		if err := s.persist([]models.NewsItem{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("could not stat news file: %w", err)
	}
	return s, nil
}

func (s *JSONNewsStore) load() ([]models.NewsItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.NewsItem{}, nil
		}
		return nil, fmt.Errorf("could not read news file: %w", err)
	}

	items := []models.NewsItem{}
	if len(bytes.TrimSpace(data)) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("could not parse news file: %w", err)
	}
	return items, nil
}

func (s *JSONNewsStore) persist(items []models.NewsItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode news: %w", err)
	}
	if _, err := storage.SaveFile(bytes.NewReader(data), filepath.Dir(s.path), filepath.Base(s.path)); err != nil {
		return fmt.Errorf("could not write news file: %w", err)
	}
	return nil
}

// List returns all items in insertion order, or reversed for NewsOrderDesc.
func (s *JSONNewsStore) List(ctx context.Context, order NewsOrder) ([]models.NewsItem, error) {
	s.mu.Lock()
	items, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if order == NewsOrderDesc {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items, nil
}

// Add appends a new item.
func (s *JSONNewsStore) Add(ctx context.Context, payload models.NewsCreatePayload) (*models.NewsItem, error) {
	item, err := newNewsItem(payload, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := s.persist(items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item with id. An unknown id leaves the file untouched.
func (s *JSONNewsStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		logging.Log.Debugf("News item %s not found, nothing to delete", id)
		return nil
	}
	return s.persist(kept)
}
