package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/plan/dto"
	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type UpdatePlanCommand struct {
	ID uint
	PlanFields
}

type UpdatePlanUseCase struct {
	planRepo     plan.Repository
	planToolRepo plan.PlanToolRepository
	tx           transactor
	logger       logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo plan.Repository,
	planToolRepo plan.PlanToolRepository,
	tx transactor,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo:     planRepo,
		planToolRepo: planToolRepo,
		tx:           tx,
		logger:       logger,
	}
}

// Execute replaces every attribute of the plan. Status changes go through
// SetPlanStatusUseCase.
func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	if !utils.IsSlug(cmd.Slug) {
		return nil, errors.NewValidationError("Plan slug must contain only lowercase letters, digits and hyphens")
	}

	p, err := uc.planRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.ID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("Plan not found")
	}

	if cmd.IsDefault && !p.IsActive() {
		return nil, errors.NewValidationError("An inactive plan cannot be the default plan")
	}

	if err := p.Update(cmd.attributes()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.planRepo.Update(ctx, p); err != nil {
			return err
		}
		if p.IsDefault() {
			return uc.planRepo.ClearDefault(ctx, p.ID())
		}
		return nil
	})
	if err != nil {
		switch {
		case stderrors.Is(err, plan.ErrPlanSlugExists):
			return nil, errors.NewConflictError("Plan slug already exists")
		case stderrors.Is(err, plan.ErrPlanNotFound):
			return nil, errors.NewNotFoundError("Plan not found")
		}
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", cmd.ID)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	tools, err := uc.planToolRepo.ListByPlan(ctx, p.ID())
	if err != nil {
		uc.logger.Errorw("failed to list plan tools", "error", err, "plan_id", p.ID())
		return nil, fmt.Errorf("failed to list plan tools: %w", err)
	}

	uc.logger.Infow("plan updated", "plan_id", p.ID())
	return dto.ToPlanDTO(p, tools), nil
}
