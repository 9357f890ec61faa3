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

type CreatePlanCommand struct {
	PlanFields
}

type CreatePlanUseCase struct {
	planRepo plan.Repository
	tx       transactor
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo plan.Repository, tx transactor, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		tx:       tx,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	if !utils.IsSlug(cmd.Slug) {
		return nil, errors.NewValidationError("Plan slug must contain only lowercase letters, digits and hyphens")
	}

	existing, err := uc.planRepo.GetBySlug(ctx, cmd.Slug)
	if err != nil {
		uc.logger.Errorw("failed to check slug existence", "error", err, "slug", cmd.Slug)
		return nil, fmt.Errorf("failed to check slug existence: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("Plan slug already exists")
	}

	p, err := plan.NewPlan(cmd.attributes())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// The new row and the demotion of the previous default commit together.
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.planRepo.Create(ctx, p); err != nil {
			return err
		}
		if p.IsDefault() {
			return uc.planRepo.ClearDefault(ctx, p.ID())
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, plan.ErrPlanSlugExists) {
			return nil, errors.NewConflictError("Plan slug already exists")
		}
		uc.logger.Errorw("failed to create plan", "error", err, "slug", cmd.Slug)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("plan created", "plan_id", p.ID(), "slug", p.Slug())
	return dto.ToPlanDTO(p, nil), nil
}
