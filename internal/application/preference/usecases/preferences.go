package usecases

import (
	"context"
	"fmt"
	"maps"

	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type GetPreferencesUseCase struct {
	repo   preference.Repository
	logger logger.Interface
}

func NewGetPreferencesUseCase(repo preference.Repository, logger logger.Interface) *GetPreferencesUseCase {
	return &GetPreferencesUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute returns stored preferences, or the defaults when none were saved.
func (uc *GetPreferencesUseCase) Execute(ctx context.Context, userID uint) (*preference.Preferences, error) {
	return load(ctx, uc.repo, uc.logger, userID)
}

type UpdatePreferencesCommand struct {
	UserID uint
	preference.Update
}

type UpdatePreferencesUseCase struct {
	repo   preference.Repository
	logger logger.Interface
}

func NewUpdatePreferencesUseCase(repo preference.Repository, logger logger.Interface) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute applies a partial update. Nothing is stored when any field is invalid.
func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, cmd UpdatePreferencesCommand) (*preference.Preferences, error) {
	current, err := load(ctx, uc.repo, uc.logger, cmd.UserID)
	if err != nil {
		return nil, err
	}

	next := *current
	next.Settings = maps.Clone(current.Settings)
	if err := next.Apply(cmd.Update); err != nil {
		return nil, errors.NewValidationError("Invalid preferences", err.Error())
	}

	if err := uc.repo.Save(ctx, &next); err != nil {
		uc.logger.Errorw("failed to save preferences", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return &next, nil
}

func load(ctx context.Context, repo preference.Repository, log logger.Interface, userID uint) (*preference.Preferences, error) {
	prefs, err := repo.Get(ctx, userID)
	if err != nil {
		log.Errorw("failed to get preferences", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	if prefs == nil {
		return preference.Defaults(userID), nil
	}
	if prefs.Settings == nil {
		prefs.Settings = map[string]any{}
	}
	return prefs, nil
}
