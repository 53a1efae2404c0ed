package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

type userFlagsRepo struct {
	db *sqlx.DB
}

// NewUserFlagsRepo creates a new PostgreSQL-backed UserFlagsRepository.
func NewUserFlagsRepo(db *sqlx.DB) port.UserFlagsRepository {
	return &userFlagsRepo{db: db}
}

func (r *userFlagsRepo) Get(ctx context.Context, userID string) (*domain.UserFlags, error) {
	var flags domain.UserFlags
	err := r.db.GetContext(ctx, &flags,
		`SELECT * FROM user_flags WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.UserFlags{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("userFlagsRepo.Get: %w", err)
	}
	return &flags, nil
}

func (r *userFlagsRepo) Upsert(ctx context.Context, flags *domain.UserFlags) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_flags (user_id, provide_training_data, local_training_enabled, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET provide_training_data = EXCLUDED.provide_training_data,
		     local_training_enabled = EXCLUDED.local_training_enabled,
		     updated_at = NOW()`,
		flags.UserID, flags.ProvideTrainingData, flags.LocalTrainingEnabled)
	if err != nil {
		return fmt.Errorf("userFlagsRepo.Upsert: %w", err)
	}
	return nil
}
