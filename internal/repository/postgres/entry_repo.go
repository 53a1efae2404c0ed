package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

type entryRepo struct {
	db *sqlx.DB
}

// NewEntryRepo creates a new PostgreSQL-backed EntryRepository.
func NewEntryRepo(db *sqlx.DB) port.EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, entry *domain.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (id, image_key, ocr_text, corrected_text, store_name, purchase_date, total_amount, model_version, ocr_candidates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.ImageKey, entry.OCRText, entry.CorrectedText, entry.StoreName,
		entry.PurchaseDate, entry.TotalAmount, entry.ModelVersion, entry.OCRCandidates)
	if err != nil {
		return fmt.Errorf("entryRepo.Create: %w", err)
	}
	return nil
}

func (r *entryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	var entry domain.Entry
	err := r.db.GetContext(ctx, &entry,
		`SELECT * FROM entries WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("entryRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *entryRepo) List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM entries`); err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List count: %w", err)
	}

	var entries []domain.Entry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM entries ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *entryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE entries
		 SET corrected_text = $2, store_name = $3, purchase_date = $4, total_amount = $5, updated_at = NOW()
		 WHERE id = $1`,
		entry.ID, entry.CorrectedText, entry.StoreName, entry.PurchaseDate, entry.TotalAmount)
	if err != nil {
		return fmt.Errorf("entryRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("entryRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *entryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("entryRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("entryRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
