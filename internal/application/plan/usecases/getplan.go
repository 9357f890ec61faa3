package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/plan/dto"
	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type GetPlanUseCase struct {
	planRepo     plan.Repository
	planToolRepo plan.PlanToolRepository
	logger       logger.Interface
}

func NewGetPlanUseCase(planRepo plan.Repository, planToolRepo plan.PlanToolRepository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo:     planRepo,
		planToolRepo: planToolRepo,
		logger:       logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, id uint) (*dto.PlanDTO, error) {
	p, err := uc.planRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("Plan not found")
	}

	tools, err := uc.planToolRepo.ListByPlan(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to list plan tools", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to list plan tools: %w", err)
	}

	return dto.ToPlanDTO(p, tools), nil
}
