package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/goroutine"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// QuotaReachedHandler is told when a run used up the last run of a limited tool.
type QuotaReachedHandler interface {
	QuotaReached(ctx context.Context, userID uint, toolName string, q usage.Quota)
}

// QuotaService resolves a user's effective plan and meters tool runs against it.
type QuotaService struct {
	planRepo     plan.Repository
	planToolRepo plan.PlanToolRepository
	subRepo      plan.SubscriptionRepository
	usageRepo    usage.Repository
	onReached    QuotaReachedHandler
	logger       logger.Interface
	now          func() time.Time
}

func NewQuotaService(
	planRepo plan.Repository,
	planToolRepo plan.PlanToolRepository,
	subRepo plan.SubscriptionRepository,
	usageRepo usage.Repository,
	onReached QuotaReachedHandler,
	logger logger.Interface,
) *QuotaService {
	return &QuotaService{
		planRepo:     planRepo,
		planToolRepo: planToolRepo,
		subRepo:      subRepo,
		usageRepo:    usageRepo,
		onReached:    onReached,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

// Entitlement is the plan a user is currently served by and its usage period.
type Entitlement struct {
	Plan         *plan.Plan
	Subscription *plan.Subscription
	Period       usage.Period
}

// ResolveEntitlement returns the subscribed plan while the subscription is
// active, otherwise the default plan. Plan is nil when neither exists.
func (s *QuotaService) ResolveEntitlement(ctx context.Context, userID uint) (*Entitlement, error) {
	now := s.now()

	sub, err := s.subRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to get subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	ent := &Entitlement{}
	if sub != nil && sub.IsActiveAt(now) {
		p, err := s.planRepo.GetByID(ctx, sub.PlanID())
		if err != nil {
			s.logger.Errorw("failed to get plan", "error", err, "plan_id", sub.PlanID())
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
		if p != nil {
			ent.Plan = p
			ent.Subscription = sub
		}
	}

	if ent.Plan == nil {
		p, err := s.planRepo.GetDefault(ctx)
		if err != nil {
			s.logger.Errorw("failed to get default plan", "error", err)
			return nil, fmt.Errorf("failed to get default plan: %w", err)
		}
		if p == nil {
			s.logger.Warnw("no default plan configured, user has no tool access", "user_id", userID)
		}
		ent.Plan = p
	}

	ent.Period = periodFor(ent.Subscription, now)
	return ent, nil
}

// periodFor uses the subscription's current period when it has one, else the
// business calendar month.
func periodFor(sub *plan.Subscription, now time.Time) usage.Period {
	if sub != nil && sub.HasPeriod() {
		return usage.Period{Start: sub.CurrentPeriodStart(), End: sub.CurrentPeriodEnd()}
	}
	start, end := biztime.MonthPeriod(now)
	return usage.Period{Start: start, End: end}
}

func (s *QuotaService) access(ctx context.Context, p *plan.Plan, toolSlug string) (plan.Access, error) {
	if p == nil {
		return plan.Access{}, nil
	}
	pt, err := s.planToolRepo.Get(ctx, p.ID(), toolSlug)
	if err != nil {
		s.logger.Errorw("failed to get plan tool", "error", err, "plan_id", p.ID(), "tool", toolSlug)
		return plan.Access{}, fmt.Errorf("failed to get plan tool: %w", err)
	}
	return plan.ResolveAccess(p, pt), nil
}

// CheckAccess reports whether the user's plan includes the tool.
func (s *QuotaService) CheckAccess(ctx context.Context, userID uint, toolSlug string) (bool, error) {
	ent, err := s.ResolveEntitlement(ctx, userID)
	if err != nil {
		return false, err
	}
	access, err := s.access(ctx, ent.Plan, toolSlug)
	if err != nil {
		return false, err
	}
	return access.Allowed, nil
}

// Evaluate returns the user's quota for one tool in the current period.
func (s *QuotaService) Evaluate(ctx context.Context, userID uint, toolSlug string) (usage.Quota, error) {
	ent, err := s.ResolveEntitlement(ctx, userID)
	if err != nil {
		return usage.Quota{}, err
	}

	access, err := s.access(ctx, ent.Plan, toolSlug)
	if err != nil {
		return usage.Quota{}, err
	}

	used := 0
	if access.Allowed {
		used, err = s.usageRepo.Count(ctx, userID, toolSlug, ent.Period.Start)
		if err != nil {
			s.logger.Errorw("failed to count usage", "error", err, "user_id", userID, "tool", toolSlug)
			return usage.Quota{}, fmt.Errorf("failed to count usage: %w", err)
		}
	}

	return usage.NewQuota(toolSlug, access, used, ent.Period), nil
}

// Reserve takes one run from the period q was evaluated for. It returns
// usage.ErrQuotaExhausted when concurrent runs used up the quota after q was
// evaluated.
func (s *QuotaService) Reserve(ctx context.Context, userID uint, q usage.Quota) (usage.Reservation, error) {
	limit := q.Limit
	if q.Unlimited {
		limit = 0
	}
	period := usage.Period{Start: q.PeriodStart, End: q.PeriodEnd}
	count, err := s.usageRepo.Reserve(ctx, userID, q.ToolSlug, period, limit)
	if err != nil {
		return usage.Reservation{}, err
	}
	return usage.Reservation{Quota: q, Count: count}, nil
}

// Release gives back a reserved run whose tool call failed.
func (s *QuotaService) Release(ctx context.Context, userID uint, r usage.Reservation) error {
	return s.usageRepo.Release(ctx, userID, r.Quota.ToolSlug, r.Quota.PeriodStart)
}

// Confirm is called once a reserved run succeeded. When that run filled a
// limited quota, the quota handler is notified in the background.
func (s *QuotaService) Confirm(userID uint, toolName string, r usage.Reservation) {
	if s.onReached == nil || !r.FillsQuota() {
		return
	}

	reached := r.Quota
	reached.Used = r.Count
	reached.Remaining = 0
	goroutine.SafeGo(s.logger, "quota-reached", func() {
		s.onReached.QuotaReached(context.Background(), userID, toolName, reached)
	})
}
