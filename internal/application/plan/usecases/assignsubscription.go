package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/consultkit/consultkit/internal/application/plan/dto"
	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type AssignSubscriptionCommand struct {
	UserID uint
	PlanID uint
	// Status defaults to active.
	Status string
	// Zero bounds mean usage resets every calendar month.
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type AssignSubscriptionUseCase struct {
	userRepo userLookup
	planRepo plan.Repository
	subRepo  plan.SubscriptionRepository
	logger   logger.Interface
}

func NewAssignSubscriptionUseCase(
	userRepo userLookup,
	planRepo plan.Repository,
	subRepo plan.SubscriptionRepository,
	logger logger.Interface,
) *AssignSubscriptionUseCase {
	return &AssignSubscriptionUseCase{
		userRepo: userRepo,
		planRepo: planRepo,
		subRepo:  subRepo,
		logger:   logger,
	}
}

// Execute creates the user's subscription or moves it to another plan.
func (uc *AssignSubscriptionUseCase) Execute(ctx context.Context, cmd AssignSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	status := plan.SubscriptionStatus(cmd.Status)
	if status == "" {
		status = plan.SubscriptionActive
	}
	if !status.IsValid() {
		return nil, errors.NewValidationError("Invalid subscription status")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	p, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("Plan not found")
	}
	if !p.IsActive() {
		return nil, errors.NewValidationError("Cannot subscribe to an inactive plan")
	}

	sub, err := uc.subRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	if sub == nil {
		sub, err = plan.NewSubscription(cmd.UserID, p.ID(), status, cmd.PeriodStart, cmd.PeriodEnd)
	} else {
		err = sub.Assign(p.ID(), status, cmd.PeriodStart, cmd.PeriodEnd)
	}
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.subRepo.Save(ctx, sub); err != nil {
		uc.logger.Errorw("failed to save subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	uc.logger.Infow("subscription assigned", "user_id", cmd.UserID, "plan_id", p.ID(), "status", status)
	return dto.ToSubscriptionDTO(sub), nil
}
