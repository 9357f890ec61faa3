package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPreferenceRepository(db *gorm.DB, logger logger.Interface) preference.Repository {
	return &PreferenceRepositoryImpl{db: db, logger: logger}
}

func (r *PreferenceRepositoryImpl) Get(ctx context.Context, userID uint) (*preference.Preferences, error) {
	var model models.UserPreferenceModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get preferences", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	settings := map[string]any{}
	if len(model.Settings) > 0 {
		if err := json.Unmarshal(model.Settings, &settings); err != nil {
			r.logger.Warnw("discarding unreadable preference settings", "user_id", userID, "error", err)
			settings = map[string]any{}
		}
	}

	return &preference.Preferences{
		UserID:             model.UserID,
		Theme:              preference.Theme(model.Theme),
		Language:           model.Language,
		EmailNotifications: model.EmailNotifications,
		DefaultCategory:    model.DefaultCategory,
		Settings:           settings,
		UpdatedAt:          model.UpdatedAt,
	}, nil
}

// Save upserts the full preference row.
func (r *PreferenceRepositoryImpl) Save(ctx context.Context, prefs *preference.Preferences) error {
	settings := prefs.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode preference settings: %w", err)
	}

	now := biztime.NowUTC()
	if prefs.UpdatedAt.IsZero() {
		prefs.UpdatedAt = now
	}
	model := &models.UserPreferenceModel{
		UserID:             prefs.UserID,
		Theme:              string(prefs.Theme),
		Language:           prefs.Language,
		EmailNotifications: prefs.EmailNotifications,
		DefaultCategory:    prefs.DefaultCategory,
		Settings:           datatypes.JSON(raw),
		CreatedAt:          now,
		UpdatedAt:          prefs.UpdatedAt,
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "language", "email_notifications", "default_category", "settings", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to save preferences", "user_id", prefs.UserID, "error", err)
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
