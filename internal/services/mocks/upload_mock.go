package mocks

import (
	"context"

	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of services.UploadService
type MockUploadService struct {
	mock.Mock
}

var _ services.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) Upload(ctx context.Context, in services.UploadInput) (*models.MediaRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaRecord), args.Error(1)
}
