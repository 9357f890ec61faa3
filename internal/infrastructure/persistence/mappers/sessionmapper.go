package mappers

import (
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models.
type SessionMapper interface {
	ToModel(entity *user.Session) *models.SessionModel
	ToDomain(model *models.SessionModel) *user.Session
}

// SessionMapperImpl is the concrete implementation of SessionMapper.
type SessionMapperImpl struct{}

// NewSessionMapper creates a new SessionMapper.
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToModel(entity *user.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}
	return &models.SessionModel{
		ID:               entity.ID,
		UserID:           entity.UserID,
		IPAddress:        entity.IPAddress,
		UserAgent:        entity.UserAgent,
		RefreshTokenHash: entity.RefreshTokenHash,
		ExpiresAt:        entity.ExpiresAt,
		LastActivityAt:   entity.LastActivityAt,
		CreatedAt:        entity.CreatedAt,
	}
}

func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *user.Session {
	if model == nil {
		return nil
	}
	return &user.Session{
		ID:               model.ID,
		UserID:           model.UserID,
		IPAddress:        model.IPAddress,
		UserAgent:        model.UserAgent,
		RefreshTokenHash: model.RefreshTokenHash,
		ExpiresAt:        model.ExpiresAt,
		LastActivityAt:   model.LastActivityAt,
		CreatedAt:        model.CreatedAt,
	}
}
