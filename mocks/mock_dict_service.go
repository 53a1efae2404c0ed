package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
)

// MockDictService is a mock implementation of service.DictService.
type MockDictService struct {
	mock.Mock
}

func (m *MockDictService) Regenerate(ctx context.Context) ([]domain.AutoDictEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoDictEntry), args.Error(1)
}

func (m *MockDictService) List(ctx context.Context) ([]domain.AutoDictEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoDictEntry), args.Error(1)
}
