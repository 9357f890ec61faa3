package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/domain/analytics"
	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type AnalyticsRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAnalyticsRepository(db *gorm.DB, logger logger.Interface) analytics.Repository {
	return &AnalyticsRepositoryImpl{db: db, logger: logger}
}

func (r *AnalyticsRepositoryImpl) Record(ctx context.Context, event *analytics.ToolRunEvent) error {
	model := &models.ToolRunEventModel{
		UserID:    event.UserID,
		ToolSlug:  event.ToolSlug,
		Success:   event.Success,
		ErrorType: event.ErrorType,
		LatencyMs: event.LatencyMs,
		CreatedAt: event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to record tool run", "tool", event.ToolSlug, "error", err)
		return fmt.Errorf("failed to record tool run: %w", err)
	}
	event.ID = model.ID
	return nil
}

type runTotals struct {
	Total       int64
	Failures    int64
	UniqueUsers int64
}

type toolStatRow struct {
	ToolSlug string
	Runs     int64
	Failures int64
}

const failureSum = "COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0)"

func (r *AnalyticsRepositoryImpl) UserSummary(ctx context.Context, userID uint, since time.Time, recent int) (*analytics.UserSummary, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.ToolRunEventModel{}).
			Where("user_id = ? AND created_at >= ?", userID, since)
	}

	var totals runTotals
	if err := scope().Select("COUNT(*) AS total, " + failureSum + " AS failures").Scan(&totals).Error; err != nil {
		r.logger.Errorw("failed to aggregate user runs", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to aggregate user runs: %w", err)
	}

	byTool, err := r.toolStats(scope(), 0)
	if err != nil {
		return nil, err
	}

	var rows []*models.ToolRunEventModel
	if err := scope().Order("created_at DESC, id DESC").Limit(recent).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list recent runs", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list recent runs: %w", err)
	}

	summary := &analytics.UserSummary{
		TotalRuns:      totals.Total,
		SuccessfulRuns: totals.Total - totals.Failures,
		ByTool:         byTool,
		Recent:         make([]*analytics.ToolRunEvent, 0, len(rows)),
	}
	for _, row := range rows {
		summary.Recent = append(summary.Recent, &analytics.ToolRunEvent{
			ID:        row.ID,
			UserID:    row.UserID,
			ToolSlug:  row.ToolSlug,
			Success:   row.Success,
			ErrorType: row.ErrorType,
			LatencyMs: row.LatencyMs,
			CreatedAt: row.CreatedAt,
		})
	}
	return summary, nil
}

func (r *AnalyticsRepositoryImpl) Overview(ctx context.Context, since time.Time, top int) (*analytics.Overview, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.ToolRunEventModel{}).Where("created_at >= ?", since)
	}

	var totals runTotals
	err := scope().
		Select("COUNT(*) AS total, " + failureSum + " AS failures, COUNT(DISTINCT user_id) AS unique_users").
		Scan(&totals).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate runs", "error", err)
		return nil, fmt.Errorf("failed to aggregate runs: %w", err)
	}

	topTools, err := r.toolStats(scope(), top)
	if err != nil {
		return nil, err
	}

	return &analytics.Overview{
		TotalRuns:   totals.Total,
		FailedRuns:  totals.Failures,
		UniqueUsers: totals.UniqueUsers,
		TopTools:    topTools,
		Since:       since,
	}, nil
}

func (r *AnalyticsRepositoryImpl) toolStats(query *gorm.DB, limit int) ([]analytics.ToolStat, error) {
	query = query.Select("tool_slug, COUNT(*) AS runs, " + failureSum + " AS failures").
		Group("tool_slug").
		Order("runs DESC, tool_slug ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []toolStatRow
	if err := query.Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to aggregate runs by tool", "error", err)
		return nil, fmt.Errorf("failed to aggregate runs by tool: %w", err)
	}

	stats := make([]analytics.ToolStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, analytics.ToolStat(row))
	}
	return stats, nil
}

func (r *AnalyticsRepositoryImpl) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.ToolRunEventModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to purge tool run events", "cutoff", cutoff, "error", result.Error)
		return 0, fmt.Errorf("failed to purge tool run events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
