package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type ToolQuota struct {
	ToolName string
	Quota    usage.Quota
}

type UsageSummary struct {
	Plan   *plan.Plan
	Period usage.Period
	Tools  []ToolQuota
}

// GetUsageSummaryUseCase lists every catalog tool the user's plan allows with
// its usage in the current period.
type GetUsageSummaryUseCase struct {
	quota        *QuotaService
	planToolRepo plan.PlanToolRepository
	usageRepo    usage.Repository
	catalog      tool.Catalog
	logger       logger.Interface
}

func NewGetUsageSummaryUseCase(
	quota *QuotaService,
	planToolRepo plan.PlanToolRepository,
	usageRepo usage.Repository,
	catalog tool.Catalog,
	logger logger.Interface,
) *GetUsageSummaryUseCase {
	return &GetUsageSummaryUseCase{
		quota:        quota,
		planToolRepo: planToolRepo,
		usageRepo:    usageRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

func (uc *GetUsageSummaryUseCase) Execute(ctx context.Context, userID uint) (*UsageSummary, error) {
	ent, err := uc.quota.ResolveEntitlement(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &UsageSummary{Plan: ent.Plan, Period: ent.Period, Tools: []ToolQuota{}}
	if ent.Plan == nil {
		return summary, nil
	}

	rows, err := uc.planToolRepo.ListByPlan(ctx, ent.Plan.ID())
	if err != nil {
		uc.logger.Errorw("failed to list plan tools", "error", err, "plan_id", ent.Plan.ID())
		return nil, fmt.Errorf("failed to list plan tools: %w", err)
	}
	overrides := make(map[string]*plan.PlanTool, len(rows))
	for _, pt := range rows {
		overrides[pt.ToolSlug] = pt
	}

	counters, err := uc.usageRepo.ListByPeriod(ctx, userID, ent.Period.Start)
	if err != nil {
		uc.logger.Errorw("failed to list usage", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	used := make(map[string]int, len(counters))
	for _, c := range counters {
		used[c.ToolSlug] = c.Count
	}

	for _, t := range uc.catalog.All() {
		access := plan.ResolveAccess(ent.Plan, overrides[t.Slug()])
		if !access.Allowed {
			continue
		}
		summary.Tools = append(summary.Tools, ToolQuota{
			ToolName: t.Name(),
			Quota:    usage.NewQuota(t.Slug(), access, used[t.Slug()], ent.Period),
		})
	}
	return summary, nil
}
