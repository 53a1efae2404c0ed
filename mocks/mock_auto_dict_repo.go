package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
)

// MockAutoDictRepo is a mock implementation of port.AutoDictRepository.
type MockAutoDictRepo struct {
	mock.Mock
}

func (m *MockAutoDictRepo) List(ctx context.Context) ([]domain.AutoDictEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoDictEntry), args.Error(1)
}

func (m *MockAutoDictRepo) ReplaceAll(ctx context.Context, entries []domain.AutoDictEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
