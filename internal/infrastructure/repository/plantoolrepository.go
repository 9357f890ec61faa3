package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/mappers"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/db"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type PlanToolRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanToolRepository(db *gorm.DB, logger logger.Interface) plan.PlanToolRepository {
	return &PlanToolRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanToolRepositoryImpl) Get(ctx context.Context, planID uint, toolSlug string) (*plan.PlanTool, error) {
	var model models.PlanToolModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ? AND tool_slug = ?", planID, toolSlug).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan tool", "plan_id", planID, "tool", toolSlug, "error", err)
		return nil, fmt.Errorf("failed to get plan tool: %w", err)
	}
	return r.mapper.PlanToolToDomain(&model), nil
}

func (r *PlanToolRepositoryImpl) ListByPlan(ctx context.Context, planID uint) ([]*plan.PlanTool, error) {
	var rows []*models.PlanToolModel
	if err := db.GetTxFromContext(ctx, r.db).Where("plan_id = ?", planID).Order("tool_slug ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list plan tools", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("failed to list plan tools: %w", err)
	}

	result := make([]*plan.PlanTool, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.PlanToolToDomain(row))
	}
	return result, nil
}

// Replace swaps the full set of tool grants for a plan atomically.
func (r *PlanToolRepositoryImpl) Replace(ctx context.Context, planID uint, tools []*plan.PlanTool) error {
	now := biztime.NowUTC()
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.PlanToolModel{}).Error; err != nil {
			r.logger.Errorw("failed to clear plan tools", "plan_id", planID, "error", err)
			return fmt.Errorf("failed to clear plan tools: %w", err)
		}
		if len(tools) == 0 {
			return nil
		}

		rows := make([]*models.PlanToolModel, 0, len(tools))
		for _, t := range tools {
			row := r.mapper.PlanToolToModel(t)
			row.ID = 0
			row.PlanID = planID
			row.CreatedAt = now
			row.UpdatedAt = now
			rows = append(rows, row)
		}
		if err := tx.Create(&rows).Error; err != nil {
			r.logger.Errorw("failed to insert plan tools", "plan_id", planID, "error", err)
			return fmt.Errorf("failed to insert plan tools: %w", err)
		}
		for i, row := range rows {
			tools[i].ID = row.ID
			tools[i].PlanID = planID
		}
		return nil
	})
}
