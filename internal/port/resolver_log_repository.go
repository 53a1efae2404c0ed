package port

import (
	"context"

	"kakeibo/internal/domain"
)

// ResolverLogRepository defines the contract for conflict-resolution call logs.
type ResolverLogRepository interface {
	Create(ctx context.Context, logEntry *domain.ResolverLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.ResolverLog, error)
}
