package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

type editLogRepo struct {
	db *sqlx.DB
}

// NewEditLogRepo creates a new PostgreSQL-backed EditLogRepository.
func NewEditLogRepo(db *sqlx.DB) port.EditLogRepository {
	return &editLogRepo{db: db}
}

func (r *editLogRepo) CreateBatch(ctx context.Context, entries []domain.EditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("editLogRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO receipt_edit_log (id, entry_id, field_name, old_value, new_value, edit_type, model_version, user_hash)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, e.EntryID, e.FieldName, e.OldValue, e.NewValue, e.EditType, e.ModelVersion, e.UserHash)
		if err != nil {
			return fmt.Errorf("editLogRepo.CreateBatch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("editLogRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *editLogRepo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EditLogEntry, error) {
	var entries []domain.EditLogEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM receipt_edit_log WHERE entry_id = $1 ORDER BY created_at ASC`,
		entryID)
	if err != nil {
		return nil, fmt.Errorf("editLogRepo.ListByEntry: %w", err)
	}
	return entries, nil
}

func (r *editLogRepo) ListAll(ctx context.Context, offset, limit int) ([]domain.EditLogEntry, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM receipt_edit_log`); err != nil {
		return nil, 0, fmt.Errorf("editLogRepo.ListAll count: %w", err)
	}

	var entries []domain.EditLogEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM receipt_edit_log ORDER BY created_at ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("editLogRepo.ListAll: %w", err)
	}
	return entries, total, nil
}

func (r *editLogRepo) ListSince(ctx context.Context, since time.Time) ([]domain.EditLogEntry, error) {
	var entries []domain.EditLogEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM receipt_edit_log WHERE created_at >= $1 ORDER BY created_at ASC`,
		since)
	if err != nil {
		return nil, fmt.Errorf("editLogRepo.ListSince: %w", err)
	}
	return entries, nil
}

func (r *editLogRepo) Stats(ctx context.Context) ([]domain.EditStat, error) {
	var stats []domain.EditStat
	err := r.db.SelectContext(ctx, &stats,
		`SELECT field_name, edit_type, COUNT(*) AS cnt
		 FROM receipt_edit_log
		 GROUP BY field_name, edit_type
		 ORDER BY cnt DESC`)
	if err != nil {
		return nil, fmt.Errorf("editLogRepo.Stats: %w", err)
	}
	return stats, nil
}

func (r *editLogRepo) ReplacementCandidates(ctx context.Context, minCount, limit int) ([]domain.ReplacementCandidate, error) {
	var candidates []domain.ReplacementCandidate
	err := r.db.SelectContext(ctx, &candidates,
		`SELECT old_value, new_value, COUNT(*) AS cnt
		 FROM receipt_edit_log
		 WHERE edit_type = 'replace'
		   AND old_value IS NOT NULL AND old_value <> ''
		   AND new_value IS NOT NULL AND new_value <> ''
		 GROUP BY old_value, new_value
		 HAVING COUNT(*) >= $1
		 ORDER BY cnt DESC
		 LIMIT $2`,
		minCount, limit)
	if err != nil {
		return nil, fmt.Errorf("editLogRepo.ReplacementCandidates: %w", err)
	}
	return candidates, nil
}

func (r *editLogRepo) ListReplacements(ctx context.Context) ([]domain.EditLogEntry, error) {
	var entries []domain.EditLogEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM receipt_edit_log
		 WHERE edit_type = 'replace'
		 ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("editLogRepo.ListReplacements: %w", err)
	}
	return entries, nil
}
