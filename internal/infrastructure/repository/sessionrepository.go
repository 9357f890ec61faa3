package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/mappers"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// SessionRepository implements user.SessionRepository
type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
	logger logger.Interface
}

func NewSessionRepository(db *gorm.DB, logger logger.Interface) user.SessionRepository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewSessionMapper(),
		logger: logger,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	if err := r.db.WithContext(ctx).Create(r.mapper.ToModel(session)).Error; err != nil {
		r.logger.Errorw("failed to create session", "user_id", session.UserID, "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get session", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) Update(ctx context.Context, session *user.Session) error {
	model := r.mapper.ToModel(session)
	result := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"refresh_token_hash": model.RefreshTokenHash,
			"expires_at":         model.ExpiresAt,
			"last_activity_at":   model.LastActivityAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update session", "session_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&models.SessionModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete session", "session_id", sessionID, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", biztime.NowUTC()).Delete(&models.SessionModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete expired sessions", "error", result.Error)
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
