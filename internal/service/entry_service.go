package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"kakeibo/internal/domain"
	"kakeibo/internal/editlog"
	"kakeibo/internal/port"
)

// SaveEntryInput carries a user's corrections to one entry. Nil fields are
// left untouched; a pointer to the empty string clears the field.
type SaveEntryInput struct {
	EntryID       uuid.UUID
	UserID        string
	CorrectedText *string
	StoreName     *string
	PurchaseDate  *string
	TotalAmount   *int
	ClearAmount   bool
}

// EntryService manages stored receipt entries and their edit history.
type EntryService interface {
	List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	Save(ctx context.Context, input *SaveEntryInput) (*domain.Entry, []domain.EditLogEntry, error)
	Confirm(ctx context.Context, entryID uuid.UUID, userID string) (*domain.TrainingSample, error)
	Delete(ctx context.Context, id uuid.UUID) error
	EditHistory(ctx context.Context, entryID uuid.UUID) ([]domain.EditLogEntry, error)
	EditStats(ctx context.Context) ([]domain.EditStat, error)
	ImprovementCandidates(ctx context.Context, minCount, limit int) ([]domain.ReplacementCandidate, error)
}

type entryService struct {
	entryRepo    port.EntryRepository
	editLogRepo  port.EditLogRepository
	flagsRepo    port.UserFlagsRepository
	trainingRepo port.TrainingRepository
}

// NewEntryService creates a new EntryService implementation.
func NewEntryService(
	entryRepo port.EntryRepository,
	editLogRepo port.EditLogRepository,
	flagsRepo port.UserFlagsRepository,
	trainingRepo port.TrainingRepository,
) EntryService {
	return &entryService{
		entryRepo:    entryRepo,
		editLogRepo:  editLogRepo,
		flagsRepo:    flagsRepo,
		trainingRepo: trainingRepo,
	}
}

func (s *entryService) List(ctx context.Context, offset, limit int) ([]domain.Entry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.entryRepo.List(ctx, offset, limit)
}

func (s *entryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	return s.entryRepo.GetByID(ctx, id)
}

// Save applies the corrections, records one edit-log row per changed field,
// and returns the updated entry together with the recorded diffs. The raw
// user identifier is anonymized before anything touches storage.
func (s *entryService) Save(ctx context.Context, input *SaveEntryInput) (*domain.Entry, []domain.EditLogEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return nil, nil, err
	}

	before := editlog.EntryFields(entry)

	if input.CorrectedText != nil {
		entry.CorrectedText = nilIfEmpty(input.CorrectedText)
	}
	if input.StoreName != nil {
		entry.StoreName = nilIfEmpty(input.StoreName)
	}
	if input.PurchaseDate != nil {
		entry.PurchaseDate = nilIfEmpty(input.PurchaseDate)
	}
	if input.TotalAmount != nil {
		entry.TotalAmount = input.TotalAmount
	} else if input.ClearAmount {
		entry.TotalAmount = nil
	}

	after := editlog.EntryFields(entry)
	diffs := editlog.DiffFields(before, after)
	if len(diffs) == 0 {
		return entry, nil, nil
	}

	userHash := editlog.AnonymizeUser(input.UserID)
	logEntries := make([]domain.EditLogEntry, 0, len(diffs))
	for _, d := range diffs {
		logEntries = append(logEntries, domain.EditLogEntry{
			ID:           uuid.New(),
			EntryID:      entry.ID,
			FieldName:    d.FieldName,
			OldValue:     d.OldValue,
			NewValue:     d.NewValue,
			EditType:     d.EditType,
			ModelVersion: entry.ModelVersion,
			UserHash:     userHash,
		})
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, nil, err
	}
	if err := s.editLogRepo.CreateBatch(ctx, logEntries); err != nil {
		return nil, nil, fmt.Errorf("entryService.Save: %w", err)
	}
	return entry, logEntries, nil
}

// Confirm finalizes an entry's corrections as a training sample. The user
// must have opted in to providing training data; users who keep training
// local never have samples recorded for upload.
func (s *entryService) Confirm(ctx context.Context, entryID uuid.UUID, userID string) (*domain.TrainingSample, error) {
	flags, err := s.flagsRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !flags.ProvideTrainingData || flags.LocalTrainingEnabled {
		return nil, domain.ErrTrainingNotAllowed
	}

	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	text := entry.OCRText
	if entry.CorrectedText != nil && *entry.CorrectedText != "" {
		text = *entry.CorrectedText
	}

	imageHash := hashKey(entry.ImageKey)
	sample := &domain.TrainingSample{
		ID:            uuid.New(),
		UserID:        userID,
		EntryID:       &entry.ID,
		ImageKey:      &entry.ImageKey,
		CorrectedText: text,
		StoreName:     entry.StoreName,
		PurchaseDate:  entry.PurchaseDate,
		TotalAmount:   entry.TotalAmount,
		ImageHash:     &imageHash,
		SyncStatus:    domain.SyncStatusPending,
	}
	if err := s.trainingRepo.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("entryService.Confirm: %w", err)
	}
	return sample, nil
}

func (s *entryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.entryRepo.Delete(ctx, id)
}

func (s *entryService) EditHistory(ctx context.Context, entryID uuid.UUID) ([]domain.EditLogEntry, error) {
	if _, err := s.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}
	return s.editLogRepo.ListByEntry(ctx, entryID)
}

func (s *entryService) EditStats(ctx context.Context) ([]domain.EditStat, error) {
	return s.editLogRepo.Stats(ctx)
}

func (s *entryService) ImprovementCandidates(ctx context.Context, minCount, limit int) ([]domain.ReplacementCandidate, error) {
	if minCount <= 0 {
		minCount = 2
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.editLogRepo.ReplacementCandidates(ctx, minCount, limit)
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
