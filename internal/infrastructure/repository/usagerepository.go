package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/db"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// UsageRepositoryImpl keeps one counter per (user, tool, period start).
type UsageRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUsageRepository(db *gorm.DB, logger logger.Interface) usage.Repository {
	return &UsageRepositoryImpl{db: db, logger: logger}
}

func (r *UsageRepositoryImpl) Count(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) (int, error) {
	var model models.UsageCounterModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND tool_slug = ? AND period_start = ?", userID, toolSlug, periodStart.UTC()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		r.logger.Errorw("failed to read usage counter", "user_id", userID, "tool", toolSlug, "error", err)
		return 0, fmt.Errorf("failed to read usage counter: %w", err)
	}
	return model.Count, nil
}

// Reserve takes one run inside a transaction: the counter row is created
// with a zero count if missing, then bumped only while it is below limit. The
// row stays locked until commit, so the count read back is this caller's.
func (r *UsageRepositoryImpl) Reserve(ctx context.Context, userID uint, toolSlug string, period usage.Period, limit int) (int, error) {
	now := biztime.NowUTC()
	start := period.Start.UTC()
	seed := &models.UsageCounterModel{
		UserID:      userID,
		ToolSlug:    toolSlug,
		PeriodStart: start,
		PeriodEnd:   period.End.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var count int
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "tool_slug"}, {Name: "period_start"}},
			DoNothing: true,
		}).Create(seed).Error
		if err != nil {
			return err
		}

		update := tx.Model(&models.UsageCounterModel{}).
			Where("user_id = ? AND tool_slug = ? AND period_start = ?", userID, toolSlug, start)
		if limit > 0 {
			update = update.Where("count < ?", limit)
		}
		res := update.Updates(map[string]any{
			"count":      gorm.Expr("count + 1"),
			"updated_at": now,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usage.ErrQuotaExhausted
		}

		return tx.Model(&models.UsageCounterModel{}).
			Where("user_id = ? AND tool_slug = ? AND period_start = ?", userID, toolSlug, start).
			Pluck("count", &count).Error
	})
	if err != nil {
		if errors.Is(err, usage.ErrQuotaExhausted) {
			return 0, err
		}
		r.logger.Errorw("failed to reserve usage", "user_id", userID, "tool", toolSlug, "error", err)
		return 0, fmt.Errorf("failed to reserve usage: %w", err)
	}
	return count, nil
}

func (r *UsageRepositoryImpl) Release(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) error {
	err := db.GetTxFromContext(ctx, r.db).Model(&models.UsageCounterModel{}).
		Where("user_id = ? AND tool_slug = ? AND period_start = ? AND count > 0", userID, toolSlug, periodStart.UTC()).
		Updates(map[string]any{
			"count":      gorm.Expr("count - 1"),
			"updated_at": biztime.NowUTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to release usage", "user_id", userID, "tool", toolSlug, "error", err)
		return fmt.Errorf("failed to release usage: %w", err)
	}
	return nil
}

func (r *UsageRepositoryImpl) ListByPeriod(ctx context.Context, userID uint, periodStart time.Time) ([]*usage.Counter, error) {
	var rows []*models.UsageCounterModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND period_start = ?", userID, periodStart.UTC()).
		Order("tool_slug ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list usage counters", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list usage counters: %w", err)
	}

	counters := make([]*usage.Counter, 0, len(rows))
	for _, row := range rows {
		counters = append(counters, &usage.Counter{
			ID:          row.ID,
			UserID:      row.UserID,
			ToolSlug:    row.ToolSlug,
			PeriodStart: row.PeriodStart,
			PeriodEnd:   row.PeriodEnd,
			Count:       row.Count,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return counters, nil
}
