package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
)

// MockResolverLogRepo is a mock implementation of port.ResolverLogRepository.
type MockResolverLogRepo struct {
	mock.Mock
}

func (m *MockResolverLogRepo) Create(ctx context.Context, logEntry *domain.ResolverLog) error {
	args := m.Called(ctx, logEntry)
	return args.Error(0)
}

func (m *MockResolverLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.ResolverLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResolverLog), args.Error(1)
}
