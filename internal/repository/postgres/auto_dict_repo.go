package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

type autoDictRepo struct {
	db *sqlx.DB
}

// NewAutoDictRepo creates a new PostgreSQL-backed AutoDictRepository.
func NewAutoDictRepo(db *sqlx.DB) port.AutoDictRepository {
	return &autoDictRepo{db: db}
}

func (r *autoDictRepo) List(ctx context.Context) ([]domain.AutoDictEntry, error) {
	var entries []domain.AutoDictEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT from_text, to_text, freq FROM auto_dict ORDER BY freq DESC, from_text ASC`)
	if err != nil {
		return nil, fmt.Errorf("autoDictRepo.List: %w", err)
	}
	return entries, nil
}

func (r *autoDictRepo) ReplaceAll(ctx context.Context, entries []domain.AutoDictEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("autoDictRepo.ReplaceAll begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM auto_dict`); err != nil {
		return fmt.Errorf("autoDictRepo.ReplaceAll clear: %w", err)
	}
	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO auto_dict (from_text, to_text, freq) VALUES ($1, $2, $3)`,
			e.From, e.To, e.Freq)
		if err != nil {
			return fmt.Errorf("autoDictRepo.ReplaceAll insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("autoDictRepo.ReplaceAll commit: %w", err)
	}
	return nil
}
