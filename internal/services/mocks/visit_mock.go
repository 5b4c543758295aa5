package mocks

import (
	"context"

	"inkhub/internal/models"
	"inkhub/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockVisitService is a mock implementation of services.VisitService
type MockVisitService struct {
	mock.Mock
}

var _ services.VisitService = (*MockVisitService)(nil)

func (m *MockVisitService) Record(ctx context.Context, clientKey, path string) (bool, error) {
	args := m.Called(ctx, clientKey, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockVisitService) Stats(ctx context.Context, days int) (*models.VisitStats, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VisitStats), args.Error(1)
}
