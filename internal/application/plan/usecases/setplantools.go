package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/plan/dto"
	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type PlanToolInput struct {
	ToolSlug     string
	Enabled      bool
	MonthlyLimit *int
}

type SetPlanToolsCommand struct {
	PlanID uint
	Tools  []PlanToolInput
}

// SetPlanToolsUseCase replaces a plan's per-tool rules.
type SetPlanToolsUseCase struct {
	planRepo     plan.Repository
	planToolRepo plan.PlanToolRepository
	catalog      tool.Catalog
	logger       logger.Interface
}

func NewSetPlanToolsUseCase(
	planRepo plan.Repository,
	planToolRepo plan.PlanToolRepository,
	catalog tool.Catalog,
	logger logger.Interface,
) *SetPlanToolsUseCase {
	return &SetPlanToolsUseCase{
		planRepo:     planRepo,
		planToolRepo: planToolRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

func (uc *SetPlanToolsUseCase) Execute(ctx context.Context, cmd SetPlanToolsCommand) (*dto.PlanDTO, error) {
	p, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("Plan not found")
	}

	seen := make(map[string]bool, len(cmd.Tools))
	tools := make([]*plan.PlanTool, 0, len(cmd.Tools))
	for _, in := range cmd.Tools {
		if _, ok := uc.catalog.Get(in.ToolSlug); !ok {
			return nil, errors.NewValidationError("Unknown tool", in.ToolSlug)
		}
		if seen[in.ToolSlug] {
			return nil, errors.NewValidationError("Duplicate tool", in.ToolSlug)
		}
		if in.MonthlyLimit != nil && *in.MonthlyLimit < 0 {
			return nil, errors.NewValidationError("Monthly limit cannot be negative", in.ToolSlug)
		}
		seen[in.ToolSlug] = true
		tools = append(tools, &plan.PlanTool{
			PlanID:       p.ID(),
			ToolSlug:     in.ToolSlug,
			Enabled:      in.Enabled,
			MonthlyLimit: in.MonthlyLimit,
		})
	}

	if err := uc.planToolRepo.Replace(ctx, p.ID(), tools); err != nil {
		uc.logger.Errorw("failed to replace plan tools", "error", err, "plan_id", p.ID())
		return nil, fmt.Errorf("failed to replace plan tools: %w", err)
	}

	uc.logger.Infow("plan tools updated", "plan_id", p.ID(), "count", len(tools))
	return dto.ToPlanDTO(p, tools), nil
}
