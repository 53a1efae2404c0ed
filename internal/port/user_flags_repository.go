package port

import (
	"context"

	"kakeibo/internal/domain"
)

// UserFlagsRepository defines the contract for per-user opt-in flags.
// Get returns default (all-off) flags for users with no stored row.
type UserFlagsRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserFlags, error)
	Upsert(ctx context.Context, flags *domain.UserFlags) error
}
