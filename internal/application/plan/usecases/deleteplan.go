package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type DeletePlanUseCase struct {
	planRepo plan.Repository
	subRepo  plan.SubscriptionRepository
	logger   logger.Interface
}

func NewDeletePlanUseCase(planRepo plan.Repository, subRepo plan.SubscriptionRepository, logger logger.Interface) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo: planRepo,
		subRepo:  subRepo,
		logger:   logger,
	}
}

// Execute removes a plan nobody is subscribed to. The default plan is kept.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, id uint) error {
	p, err := uc.planRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", id)
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return errors.NewNotFoundError("Plan not found")
	}
	if p.IsDefault() {
		return errors.NewConflictError("The default plan cannot be deleted")
	}

	subscribers, err := uc.subRepo.CountByPlanID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to count plan subscribers", "error", err, "plan_id", id)
		return fmt.Errorf("failed to count subscribers: %w", err)
	}
	if subscribers > 0 {
		return errors.NewConflictError("Plan has subscribers", fmt.Sprintf("%d subscriptions reference this plan", subscribers))
	}

	if err := uc.planRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, plan.ErrPlanNotFound) {
			return errors.NewNotFoundError("Plan not found")
		}
		uc.logger.Errorw("failed to delete plan", "error", err, "plan_id", id)
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	uc.logger.Infow("plan deleted", "plan_id", id)
	return nil
}
