package port

import (
	"context"

	"github.com/google/uuid"

	"kakeibo/internal/domain"
)

// EntryRepository defines the contract for receipt entry persistence.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error)
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
