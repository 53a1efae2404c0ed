package port

import (
	"context"

	"kakeibo/internal/domain"
)

// AutoDictRepository defines the contract for the auto-correction dictionary.
// ReplaceAll swaps the whole dictionary atomically.
type AutoDictRepository interface {
	List(ctx context.Context) ([]domain.AutoDictEntry, error)
	ReplaceAll(ctx context.Context, entries []domain.AutoDictEntry) error
}
