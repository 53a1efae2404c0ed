package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
	"kakeibo/internal/service"
)

// MockFlagService is a mock implementation of service.FlagService.
type MockFlagService struct {
	mock.Mock
}

func (m *MockFlagService) Get(ctx context.Context, userID string) (*domain.UserFlags, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserFlags), args.Error(1)
}

func (m *MockFlagService) Update(ctx context.Context, input *service.UpdateFlagsInput) (*domain.UserFlags, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserFlags), args.Error(1)
}
