package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

type resolverLogRepo struct {
	db *sqlx.DB
}

// NewResolverLogRepo creates a new PostgreSQL-backed ResolverLogRepository.
func NewResolverLogRepo(db *sqlx.DB) port.ResolverLogRepository {
	return &resolverLogRepo{db: db}
}

func (r *resolverLogRepo) Create(ctx context.Context, logEntry *domain.ResolverLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_logs (id, entry_id, line_count, latency_ms, fallback_used, model_version)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		logEntry.ID, logEntry.EntryID, logEntry.LineCount, logEntry.LatencyMS,
		logEntry.FallbackUsed, logEntry.ModelVersion)
	if err != nil {
		return fmt.Errorf("resolverLogRepo.Create: %w", err)
	}
	return nil
}

func (r *resolverLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.ResolverLog, error) {
	var logs []domain.ResolverLog
	err := r.db.SelectContext(ctx, &logs,
		`SELECT * FROM llm_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("resolverLogRepo.ListRecent: %w", err)
	}
	return logs, nil
}
