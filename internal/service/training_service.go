package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"kakeibo/internal/csvexport"
	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

// ExportFormat selects the training export encoding.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

const defaultExportBatch = 1000

// TrainingService exports opted-in training samples.
type TrainingService interface {
	// Export writes pending samples to w in the given format and returns
	// them. MarkExported must be called separately once the export is
	// known to have reached its destination.
	Export(ctx context.Context, w io.Writer, format ExportFormat, limit int) ([]domain.TrainingSample, error)
	MarkExported(ctx context.Context, ids []uuid.UUID) error
}

type trainingService struct {
	trainingRepo port.TrainingRepository
}

// NewTrainingService creates a new TrainingService implementation.
func NewTrainingService(trainingRepo port.TrainingRepository) TrainingService {
	return &trainingService{trainingRepo: trainingRepo}
}

func (s *trainingService) Export(ctx context.Context, w io.Writer, format ExportFormat, limit int) ([]domain.TrainingSample, error) {
	if limit <= 0 {
		limit = defaultExportBatch
	}
	samples, err := s.trainingRepo.ListPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("trainingService.Export: %w", err)
	}

	switch format {
	case ExportJSON, "":
		err = csvexport.WriteTrainingJSON(w, samples)
	case ExportCSV:
		err = csvexport.WriteTrainingCSV(w, samples)
	case ExportXLSX:
		err = csvexport.WriteTrainingXLSX(w, samples)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("trainingService.Export: %w", err)
	}
	return samples, nil
}

func (s *trainingService) MarkExported(ctx context.Context, ids []uuid.UUID) error {
	if err := s.trainingRepo.MarkSynced(ctx, ids); err != nil {
		return fmt.Errorf("trainingService.MarkExported: %w", err)
	}
	return nil
}
