package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

type trainingRepo struct {
	db *sqlx.DB
}

// NewTrainingRepo creates a new PostgreSQL-backed TrainingRepository.
func NewTrainingRepo(db *sqlx.DB) port.TrainingRepository {
	return &trainingRepo{db: db}
}

func (r *trainingRepo) Create(ctx context.Context, sample *domain.TrainingSample) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO training_data (id, user_id, entry_id, image_key, corrected_text, store_name, purchase_date, total_amount, image_hash, sync_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sample.ID, sample.UserID, sample.EntryID, sample.ImageKey, sample.CorrectedText,
		sample.StoreName, sample.PurchaseDate, sample.TotalAmount, sample.ImageHash, sample.SyncStatus)
	if err != nil {
		return fmt.Errorf("trainingRepo.Create: %w", err)
	}
	return nil
}

func (r *trainingRepo) ListPending(ctx context.Context, limit int) ([]domain.TrainingSample, error) {
	var samples []domain.TrainingSample
	err := r.db.SelectContext(ctx, &samples,
		`SELECT * FROM training_data
		 WHERE sync_status = 'pending'
		 ORDER BY created_at ASC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("trainingRepo.ListPending: %w", err)
	}
	return samples, nil
}

func (r *trainingRepo) MarkSynced(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		`UPDATE training_data SET sync_status = 'synced' WHERE id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("trainingRepo.MarkSynced: %w", err)
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("trainingRepo.MarkSynced: %w", err)
	}
	return nil
}
