package mappers

import (
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
)

type OAuthAccountMapper interface {
	ToModel(entity *user.OAuthAccount) *models.OAuthAccountModel
	ToDomain(model *models.OAuthAccountModel) *user.OAuthAccount
}

type OAuthAccountMapperImpl struct{}

func NewOAuthAccountMapper() OAuthAccountMapper {
	return &OAuthAccountMapperImpl{}
}

func (m *OAuthAccountMapperImpl) ToModel(entity *user.OAuthAccount) *models.OAuthAccountModel {
	if entity == nil {
		return nil
	}
	return &models.OAuthAccountModel{
		ID:             entity.ID,
		UserID:         entity.UserID,
		Provider:       entity.Provider,
		ProviderUserID: entity.ProviderUserID,
		ProviderEmail:  entity.ProviderEmail,
		LastLoginAt:    entity.LastLoginAt,
		LoginCount:     entity.LoginCount,
		CreatedAt:      entity.CreatedAt,
		UpdatedAt:      entity.UpdatedAt,
	}
}

func (m *OAuthAccountMapperImpl) ToDomain(model *models.OAuthAccountModel) *user.OAuthAccount {
	if model == nil {
		return nil
	}
	return &user.OAuthAccount{
		ID:             model.ID,
		UserID:         model.UserID,
		Provider:       model.Provider,
		ProviderUserID: model.ProviderUserID,
		ProviderEmail:  model.ProviderEmail,
		LastLoginAt:    model.LastLoginAt,
		LoginCount:     model.LoginCount,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
