package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kakeibo/internal/domain"
)

// EditLogRepository defines the contract for the append-only edit log.
type EditLogRepository interface {
	CreateBatch(ctx context.Context, entries []domain.EditLogEntry) error
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EditLogEntry, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.EditLogEntry, int, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.EditLogEntry, error)
	Stats(ctx context.Context) ([]domain.EditStat, error)
	ReplacementCandidates(ctx context.Context, minCount, limit int) ([]domain.ReplacementCandidate, error)
	ListReplacements(ctx context.Context) ([]domain.EditLogEntry, error)
}
