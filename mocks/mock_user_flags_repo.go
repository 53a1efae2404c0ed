package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
)

// MockUserFlagsRepo is a mock implementation of port.UserFlagsRepository.
type MockUserFlagsRepo struct {
	mock.Mock
}

func (m *MockUserFlagsRepo) Get(ctx context.Context, userID string) (*domain.UserFlags, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserFlags), args.Error(1)
}

func (m *MockUserFlagsRepo) Upsert(ctx context.Context, flags *domain.UserFlags) error {
	args := m.Called(ctx, flags)
	return args.Error(0)
}
