package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/mappers"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/db"
)

// OAuthAccountRepository implements the user.OAuthAccountRepository interface
// using GORM with Model/Mapper separation.
type OAuthAccountRepository struct {
	db     *gorm.DB
	mapper mappers.OAuthAccountMapper
}

func NewOAuthAccountRepository(db *gorm.DB) user.OAuthAccountRepository {
	return &OAuthAccountRepository{
		db:     db,
		mapper: mappers.NewOAuthAccountMapper(),
	}
}

func (r *OAuthAccountRepository) Create(ctx context.Context, account *user.OAuthAccount) error {
	model := r.mapper.ToModel(account)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create oauth account: %w", err)
	}
	account.ID = model.ID
	return nil
}

func (r *OAuthAccountRepository) GetByProviderAndUserID(ctx context.Context, provider, providerUserID string) (*user.OAuthAccount, error) {
	var model models.OAuthAccountModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get oauth account: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *OAuthAccountRepository) Update(ctx context.Context, account *user.OAuthAccount) error {
	model := r.mapper.ToModel(account)
	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update oauth account: %w", err)
	}
	return nil
}
