package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/plan/dto"
	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type SetPlanStatusCommand struct {
	ID     uint
	Status string
}

type SetPlanStatusUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewSetPlanStatusUseCase(planRepo plan.Repository, logger logger.Interface) *SetPlanStatusUseCase {
	return &SetPlanStatusUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *SetPlanStatusUseCase) Execute(ctx context.Context, cmd SetPlanStatusCommand) (*dto.PlanDTO, error) {
	status := plan.Status(cmd.Status)
	if !status.IsValid() {
		return nil, errors.NewValidationError("Status must be active or inactive")
	}

	p, err := uc.planRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.ID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("Plan not found")
	}

	if err := p.SetStatus(status); err != nil {
		if stderrors.Is(err, plan.ErrDefaultPlanInactive) {
			return nil, errors.NewConflictError("The default plan cannot be deactivated")
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.planRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update plan status", "error", err, "plan_id", cmd.ID)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan status changed", "plan_id", cmd.ID, "status", status)
	return dto.ToPlanDTO(p, nil), nil
}
