package port

import (
	"context"

	"github.com/google/uuid"

	"kakeibo/internal/domain"
)

// TrainingRepository defines the contract for training sample persistence.
type TrainingRepository interface {
	Create(ctx context.Context, sample *domain.TrainingSample) error
	ListPending(ctx context.Context, limit int) ([]domain.TrainingSample, error)
	MarkSynced(ctx context.Context, ids []uuid.UUID) error
}
