package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/analytics/dto"
	"github.com/consultkit/consultkit/internal/domain/analytics"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

const (
	DefaultWindowDays = 30
	MaxWindowDays     = 365

	recentRuns = 10
	topTools   = 10
)

// windowDays applies the default to 0 and rejects values out of range.
func windowDays(days int) (int, error) {
	if days == 0 {
		return DefaultWindowDays, nil
	}
	if days < 0 || days > MaxWindowDays {
		return 0, errors.NewValidationError(fmt.Sprintf("days must be between 1 and %d", MaxWindowDays))
	}
	return days, nil
}

type GetUserAnalyticsUseCase struct {
	repo   analytics.Repository
	logger logger.Interface
}

func NewGetUserAnalyticsUseCase(repo analytics.Repository, logger logger.Interface) *GetUserAnalyticsUseCase {
	return &GetUserAnalyticsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetUserAnalyticsUseCase) Execute(ctx context.Context, userID uint, days int) (*dto.UserAnalyticsDTO, error) {
	days, err := windowDays(days)
	if err != nil {
		return nil, err
	}

	summary, err := uc.repo.UserSummary(ctx, userID, biztime.DaysAgoUTC(biztime.NowUTC(), days), recentRuns)
	if err != nil {
		uc.logger.Errorw("failed to summarize user runs", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}
	return dto.ToUserAnalyticsDTO(days, summary), nil
}

type GetOverviewUseCase struct {
	repo   analytics.Repository
	logger logger.Interface
}

func NewGetOverviewUseCase(repo analytics.Repository, logger logger.Interface) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetOverviewUseCase) Execute(ctx context.Context, days int) (*dto.OverviewDTO, error) {
	days, err := windowDays(days)
	if err != nil {
		return nil, err
	}

	overview, err := uc.repo.Overview(ctx, biztime.DaysAgoUTC(biztime.NowUTC(), days), topTools)
	if err != nil {
		uc.logger.Errorw("failed to build analytics overview", "error", err)
		return nil, fmt.Errorf("failed to get analytics overview: %w", err)
	}
	return dto.ToOverviewDTO(days, overview), nil
}
