package mocks

import (
	"context"
	"io"

	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockMediaStore is a mock implementation of services.MediaStore
type MockMediaStore struct {
	mock.Mock
}

var _ services.MediaStore = (*MockMediaStore)(nil)

func (m *MockMediaStore) Save(ctx context.Context, category, filename string, data io.Reader) (*models.MediaRecord, error) {
	args := m.Called(ctx, category, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaRecord), args.Error(1)
}

func (m *MockMediaStore) Exists(category, filename string) (bool, error) {
	args := m.Called(category, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaStore) List(ctx context.Context, filter models.MediaFilter) ([]models.MediaRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaRecord), args.Error(1)
}

func (m *MockMediaStore) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, category, filename string) error {
	args := m.Called(ctx, category, filename)
	return args.Error(0)
}

func (m *MockMediaStore) Open(category, filename string) (io.ReadCloser, error) {
	args := m.Called(category, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
