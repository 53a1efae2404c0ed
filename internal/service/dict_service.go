package service

import (
	"context"
	"fmt"
	"log"

	"kakeibo/internal/autodict"
	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

// DictService regenerates the auto-correction dictionary from the edit log.
type DictService interface {
	Regenerate(ctx context.Context) ([]domain.AutoDictEntry, error)
	List(ctx context.Context) ([]domain.AutoDictEntry, error)
}

type dictService struct {
	editLogRepo port.EditLogRepository
	dictRepo    port.AutoDictRepository
	minerOpts   autodict.MinerOptions
}

// NewDictService creates a new DictService implementation.
func NewDictService(editLogRepo port.EditLogRepository, dictRepo port.AutoDictRepository, opts autodict.MinerOptions) DictService {
	return &dictService{
		editLogRepo: editLogRepo,
		dictRepo:    dictRepo,
		minerOpts:   opts,
	}
}

// Regenerate mines frequent replacement pairs from the edit log and swaps the
// stored dictionary wholesale.
func (s *dictService) Regenerate(ctx context.Context) ([]domain.AutoDictEntry, error) {
	edits, err := s.editLogRepo.ListReplacements(ctx)
	if err != nil {
		return nil, fmt.Errorf("dictService.Regenerate: %w", err)
	}

	entries := autodict.Mine(edits, s.minerOpts)
	if err := s.dictRepo.ReplaceAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("dictService.Regenerate: %w", err)
	}
	log.Printf("dictService: regenerated dictionary with %d rules from %d replacement edits", len(entries), len(edits))
	return entries, nil
}

func (s *dictService) List(ctx context.Context) ([]domain.AutoDictEntry, error) {
	return s.dictRepo.List(ctx)
}
