package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
	"kakeibo/internal/service"
)

// MockEntryService is a mock implementation of service.EntryService.
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Entry), args.Int(1), args.Error(2)
}

func (m *MockEntryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryService) Save(ctx context.Context, input *service.SaveEntryInput) (*domain.Entry, []domain.EditLogEntry, error) {
	args := m.Called(ctx, input)
	var entry *domain.Entry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.Entry)
	}
	var edits []domain.EditLogEntry
	if args.Get(1) != nil {
		edits = args.Get(1).([]domain.EditLogEntry)
	}
	return entry, edits, args.Error(2)
}

func (m *MockEntryService) Confirm(ctx context.Context, entryID uuid.UUID, userID string) (*domain.TrainingSample, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingSample), args.Error(1)
}

func (m *MockEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryService) EditHistory(ctx context.Context, entryID uuid.UUID) ([]domain.EditLogEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditLogEntry), args.Error(1)
}

func (m *MockEntryService) EditStats(ctx context.Context) ([]domain.EditStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditStat), args.Error(1)
}

func (m *MockEntryService) ImprovementCandidates(ctx context.Context, minCount, limit int) ([]domain.ReplacementCandidate, error) {
	args := m.Called(ctx, minCount, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReplacementCandidate), args.Error(1)
}
