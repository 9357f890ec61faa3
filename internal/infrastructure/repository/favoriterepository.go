package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/consultkit/consultkit/internal/domain/favorite"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type FavoriteRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewFavoriteRepository(db *gorm.DB, logger logger.Interface) favorite.Repository {
	return &FavoriteRepositoryImpl{db: db, logger: logger}
}

// Add is idempotent: favouriting the same tool twice keeps the first row.
func (r *FavoriteRepositoryImpl) Add(ctx context.Context, fav *favorite.Favorite) error {
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = biztime.NowUTC()
	}
	model := &models.FavoriteModel{
		UserID:    fav.UserID,
		ToolSlug:  fav.ToolSlug,
		CreatedAt: fav.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to add favorite", "user_id", fav.UserID, "tool", fav.ToolSlug, "error", err)
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	fav.ID = model.ID
	return nil
}

func (r *FavoriteRepositoryImpl) Remove(ctx context.Context, userID uint, toolSlug string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tool_slug = ?", userID, toolSlug).
		Delete(&models.FavoriteModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to remove favorite", "user_id", userID, "tool", toolSlug, "error", result.Error)
		return false, fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*favorite.Favorite, error) {
	var rows []*models.FavoriteModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list favorites", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favs := make([]*favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, &favorite.Favorite{
			ID:        row.ID,
			UserID:    row.UserID,
			ToolSlug:  row.ToolSlug,
			CreatedAt: row.CreatedAt,
		})
	}
	return favs, nil
}
