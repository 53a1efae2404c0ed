package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
)

// MockEditLogRepo is a mock implementation of port.EditLogRepository.
type MockEditLogRepo struct {
	mock.Mock
}

func (m *MockEditLogRepo) CreateBatch(ctx context.Context, entries []domain.EditLogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEditLogRepo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EditLogEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditLogEntry), args.Error(1)
}

func (m *MockEditLogRepo) ListAll(ctx context.Context, offset, limit int) ([]domain.EditLogEntry, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EditLogEntry), args.Int(1), args.Error(2)
}

func (m *MockEditLogRepo) ListSince(ctx context.Context, since time.Time) ([]domain.EditLogEntry, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditLogEntry), args.Error(1)
}

func (m *MockEditLogRepo) Stats(ctx context.Context) ([]domain.EditStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditStat), args.Error(1)
}

func (m *MockEditLogRepo) ReplacementCandidates(ctx context.Context, minCount, limit int) ([]domain.ReplacementCandidate, error) {
	args := m.Called(ctx, minCount, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReplacementCandidate), args.Error(1)
}

func (m *MockEditLogRepo) ListReplacements(ctx context.Context) ([]domain.EditLogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditLogEntry), args.Error(1)
}
