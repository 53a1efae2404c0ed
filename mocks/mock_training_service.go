package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
	"kakeibo/internal/service"
)

// MockTrainingService is a mock implementation of service.TrainingService.
type MockTrainingService struct {
	mock.Mock
}

func (m *MockTrainingService) Export(ctx context.Context, w io.Writer, format service.ExportFormat, limit int) ([]domain.TrainingSample, error) {
	args := m.Called(ctx, w, format, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainingSample), args.Error(1)
}

func (m *MockTrainingService) MarkExported(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
