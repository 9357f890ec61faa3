package mappers

import (
	"fmt"

	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := user.ReconstructUser(
		model.ID,
		model.UUID,
		model.Email,
		model.Name,
		model.PasswordHash,
		model.Role,
		model.Status,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID(),
		UUID:         entity.UUID(),
		Email:        entity.Email(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		Role:         entity.Role().String(),
		Status:       string(entity.Status()),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(modelList []*models.UserModel) ([]*user.User, error) {
	return mapSlice(modelList, m.ToEntity, func(model *models.UserModel) uint { return model.ID })
}

// mapSlice converts each element, naming the failing record by ID.
func mapSlice[S any, D any](src []S, convert func(S) (D, error), idOf func(S) uint) ([]D, error) {
	out := make([]D, 0, len(src))
	for _, s := range src {
		d, err := convert(s)
		if err != nil {
			return nil, fmt.Errorf("failed to map record %d: %w", idOf(s), err)
		}
		out = append(out, d)
	}
	return out, nil
}
