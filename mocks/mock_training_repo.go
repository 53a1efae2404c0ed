package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
)

// MockTrainingRepo is a mock implementation of port.TrainingRepository.
type MockTrainingRepo struct {
	mock.Mock
}

func (m *MockTrainingRepo) Create(ctx context.Context, sample *domain.TrainingSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockTrainingRepo) ListPending(ctx context.Context, limit int) ([]domain.TrainingSample, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainingSample), args.Error(1)
}

func (m *MockTrainingRepo) MarkSynced(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
