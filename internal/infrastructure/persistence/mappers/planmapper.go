package mappers

import (
	"fmt"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
)

// PlanMapper handles the conversion between plan entities and persistence models
type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*plan.Plan, error)
	ToModel(entity *plan.Plan) *models.PlanModel
	ToEntities(models []*models.PlanModel) ([]*plan.Plan, error)

	PlanToolToDomain(model *models.PlanToolModel) *plan.PlanTool
	PlanToolToModel(entity *plan.PlanTool) *models.PlanToolModel
}

type PlanMapperImpl struct{}

func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*plan.Plan, error) {
	if model == nil {
		return nil, nil
	}

	attrs := plan.Attributes{
		Slug:             model.Slug,
		Name:             model.Name,
		Description:      model.Description,
		Price:            model.Price,
		Currency:         model.Currency,
		Interval:         plan.Interval(model.Interval),
		IsDefault:        model.IsDefault,
		AllTools:         model.AllTools,
		DefaultToolLimit: model.DefaultToolLimit,
		SortOrder:        model.SortOrder,
	}

	entity, err := plan.ReconstructPlan(model.ID, attrs, plan.Status(model.Status), model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}
	return entity, nil
}

func (m *PlanMapperImpl) ToModel(entity *plan.Plan) *models.PlanModel {
	if entity == nil {
		return nil
	}
	return &models.PlanModel{
		ID:               entity.ID(),
		Slug:             entity.Slug(),
		Name:             entity.Name(),
		Description:      entity.Description(),
		Price:            entity.Price(),
		Currency:         entity.Currency(),
		Interval:         string(entity.Interval()),
		Status:           string(entity.Status()),
		IsDefault:        entity.IsDefault(),
		AllTools:         entity.AllTools(),
		DefaultToolLimit: entity.DefaultToolLimit(),
		SortOrder:        entity.SortOrder(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (m *PlanMapperImpl) ToEntities(modelList []*models.PlanModel) ([]*plan.Plan, error) {
	return mapSlice(modelList, m.ToEntity, func(model *models.PlanModel) uint { return model.ID })
}

func (m *PlanMapperImpl) PlanToolToDomain(model *models.PlanToolModel) *plan.PlanTool {
	if model == nil {
		return nil
	}
	return &plan.PlanTool{
		ID:           model.ID,
		PlanID:       model.PlanID,
		ToolSlug:     model.ToolSlug,
		Enabled:      model.Enabled,
		MonthlyLimit: model.MonthlyLimit,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func (m *PlanMapperImpl) PlanToolToModel(entity *plan.PlanTool) *models.PlanToolModel {
	if entity == nil {
		return nil
	}
	return &models.PlanToolModel{
		ID:           entity.ID,
		PlanID:       entity.PlanID,
		ToolSlug:     entity.ToolSlug,
		Enabled:      entity.Enabled,
		MonthlyLimit: entity.MonthlyLimit,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}
