package mocks

import (
	"context"

	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockNewsStore is a mock implementation of services.NewsStore
type MockNewsStore struct {
	mock.Mock
}

var _ services.NewsStore = (*MockNewsStore)(nil)

func (m *MockNewsStore) List(ctx context.Context, order services.NewsOrder) ([]models.NewsItem, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NewsItem), args.Error(1)
}

func (m *MockNewsStore) Add(ctx context.Context, payload models.NewsCreatePayload) (*models.NewsItem, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NewsItem), args.Error(1)
}

func (m *MockNewsStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
