package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/plan/dto"
	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type ListPlansQuery struct {
	Status   string
	Page     int
	PageSize int
}

type ListPlansResult struct {
	Plans    []*dto.PlanDTO
	Total    int64
	Page     int
	PageSize int
}

type ListPlansUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo plan.Repository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*ListPlansResult, error) {
	if query.Status != "" && !plan.Status(query.Status).IsValid() {
		return nil, errors.NewValidationError("Invalid status filter")
	}
	p := utils.ValidatePagination(query.Page, query.PageSize)

	plans, total, err := uc.planRepo.List(ctx, plan.ListFilter{
		Status:   query.Status,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return &ListPlansResult{
		Plans:    dto.ToPlanDTOs(plans),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
