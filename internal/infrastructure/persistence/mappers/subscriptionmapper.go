package mappers

import (
	"fmt"
	"time"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*plan.Subscription, error)
	ToModel(entity *plan.Subscription) *models.SubscriptionModel
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*plan.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := plan.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.PlanID,
		plan.SubscriptionStatus(model.Status),
		derefTime(model.CurrentPeriodStart),
		derefTime(model.CurrentPeriodEnd),
		model.CanceledAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *plan.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}
	return &models.SubscriptionModel{
		ID:                 entity.ID(),
		UserID:             entity.UserID(),
		PlanID:             entity.PlanID(),
		Status:             string(entity.Status()),
		CurrentPeriodStart: timePtr(entity.CurrentPeriodStart()),
		CurrentPeriodEnd:   timePtr(entity.CurrentPeriodEnd()),
		CanceledAt:         entity.CanceledAt(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

// zero times are stored as NULL
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
