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
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// SubscriptionRepositoryImpl implements plan.SubscriptionRepository; one row per user.
type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) plan.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID uint) (*plan.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Save(ctx context.Context, sub *plan.Subscription) error {
	model := r.mapper.ToModel(sub)
	tx := db.GetTxFromContext(ctx, r.db)

	if model.ID == 0 {
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create subscription", "user_id", model.UserID, "error", err)
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		return sub.SetID(model.ID)
	}

	if err := tx.Save(model).Error; err != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) CountByPlanID(ctx context.Context, planID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).Where("plan_id = ?", planID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "plan_id", planID, "error", err)
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}
