package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/mappers"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/db"
	apperrors "github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// PlanRepositoryImpl implements plan.Repository using GORM
type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) plan.Repository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, entity *plan.Plan) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return plan.ErrPlanSlugExists
		}
		r.logger.Errorw("failed to create plan", "slug", model.Slug, "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan ID: %w", err)
	}

	r.logger.Infow("plan created successfully", "id", model.ID, "slug", model.Slug)
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PlanRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*plan.Plan, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *PlanRepositoryImpl) GetDefault(ctx context.Context) (*plan.Plan, error) {
	return r.first(ctx, "is_default = ?", true)
}

func (r *PlanRepositoryImpl) first(ctx context.Context, cond string, arg any) (*plan.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).Order("id ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan", "condition", cond, "value", arg, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, entity *plan.Plan) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"slug":               model.Slug,
			"name":               model.Name,
			"description":        model.Description,
			"price":              model.Price,
			"currency":           model.Currency,
			"billing_interval":   model.Interval,
			"status":             model.Status,
			"is_default":         model.IsDefault,
			"all_tools":          model.AllTools,
			"default_tool_limit": model.DefaultToolLimit,
			"sort_order":         model.SortOrder,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return plan.ErrPlanSlugExists
		}
		r.logger.Errorw("failed to update plan", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrPlanNotFound
	}
	return nil
}

// Delete removes the plan together with its tool grants.
func (r *PlanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&models.PlanToolModel{}).Error; err != nil {
			r.logger.Errorw("failed to delete plan tools", "plan_id", id, "error", err)
			return fmt.Errorf("failed to delete plan tools: %w", err)
		}
		result := tx.Delete(&models.PlanModel{}, id)
		if result.Error != nil {
			r.logger.Errorw("failed to delete plan", "id", id, "error", result.Error)
			return fmt.Errorf("failed to delete plan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return plan.ErrPlanNotFound
		}
		return nil
	})
}

func (r *PlanRepositoryImpl) List(ctx context.Context, filter plan.ListFilter) ([]*plan.Plan, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count plans", "error", err)
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	var planModels []*models.PlanModel
	if err := paginate(query, filter.Page, filter.PageSize).Order("sort_order ASC, id ASC").Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	entities, err := r.mapper.ToEntities(planModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// ClearDefault unsets is_default on every plan except keepID.
func (r *PlanRepositoryImpl) ClearDefault(ctx context.Context, keepID uint) error {
	err := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{}).
		Where("is_default = ? AND id <> ?", true, keepID).
		Update("is_default", false).Error
	if err != nil {
		r.logger.Errorw("failed to clear default plan", "keep_id", keepID, "error", err)
		return fmt.Errorf("failed to clear default plan: %w", err)
	}
	return nil
}
