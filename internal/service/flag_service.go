package service

import (
	"context"

	"kakeibo/internal/domain"
	"kakeibo/internal/port"
)

// UpdateFlagsInput carries one user's opt-in switches. Nil fields keep the
// stored value.
type UpdateFlagsInput struct {
	UserID               string
	ProvideTrainingData  *bool
	LocalTrainingEnabled *bool
}

// FlagService manages per-user opt-in flags.
type FlagService interface {
	Get(ctx context.Context, userID string) (*domain.UserFlags, error)
	Update(ctx context.Context, input *UpdateFlagsInput) (*domain.UserFlags, error)
}

type flagService struct {
	flagsRepo port.UserFlagsRepository
}

// NewFlagService creates a new FlagService implementation.
func NewFlagService(flagsRepo port.UserFlagsRepository) FlagService {
	return &flagService{flagsRepo: flagsRepo}
}

func (s *flagService) Get(ctx context.Context, userID string) (*domain.UserFlags, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.flagsRepo.Get(ctx, userID)
}

func (s *flagService) Update(ctx context.Context, input *UpdateFlagsInput) (*domain.UserFlags, error) {
	if input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	flags, err := s.flagsRepo.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.ProvideTrainingData != nil {
		flags.ProvideTrainingData = *input.ProvideTrainingData
	}
	if input.LocalTrainingEnabled != nil {
		flags.LocalTrainingEnabled = *input.LocalTrainingEnabled
	}
	if err := s.flagsRepo.Upsert(ctx, flags); err != nil {
		return nil, err
	}
	return flags, nil
}
