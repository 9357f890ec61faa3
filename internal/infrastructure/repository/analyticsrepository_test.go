package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/domain/analytics"
)

func recordRun(t *testing.T, repo analytics.Repository, userID *uint, slug string, success bool, at time.Time) {
	t.Helper()
	ev := &analytics.ToolRunEvent{UserID: userID, ToolSlug: slug, Success: success, CreatedAt: at.UTC()}
	if !success {
		ev.ErrorType = "provider_error"
	}
	require.NoError(t, repo.Record(context.Background(), ev))
	assert.NotZero(t, ev.ID)
}

func TestAnalyticsRepository_SummaryAndOverview(t *testing.T) {
	repo := NewAnalyticsRepository(setupTestDB(t), testLogger())
	ctx := context.Background()
	now := time.Now().UTC()
	alice, bob := uint(1), uint(2)

	recordRun(t, repo, &alice, "swot-analysis", true, now.Add(-3*time.Hour))
	recordRun(t, repo, &alice, "swot-analysis", false, now.Add(-2*time.Hour))
	recordRun(t, repo, &alice, "budget-planner", true, now.Add(-time.Hour))
	recordRun(t, repo, &bob, "swot-analysis", true, now.Add(-time.Hour))
	recordRun(t, repo, nil, "swot-analysis", true, now.Add(-time.Hour))
	// Outside the window.
	recordRun(t, repo, &alice, "budget-planner", true, now.AddDate(0, 0, -40))

	since := now.AddDate(0, 0, -30)

	summary, err := repo.UserSummary(ctx, alice, since, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalRuns)
	assert.Equal(t, int64(2), summary.SuccessfulRuns)
	require.Len(t, summary.ByTool, 2)
	assert.Equal(t, analytics.ToolStat{ToolSlug: "swot-analysis", Runs: 2, Failures: 1}, summary.ByTool[0])
	require.Len(t, summary.Recent, 2)
	assert.Equal(t, "budget-planner", summary.Recent[0].ToolSlug)

	overview, err := repo.Overview(ctx, since, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), overview.TotalRuns)
	assert.Equal(t, int64(1), overview.FailedRuns)
	// COUNT(DISTINCT) ignores anonymous runs.
	assert.Equal(t, int64(2), overview.UniqueUsers)
	require.Len(t, overview.TopTools, 1)
	assert.Equal(t, "swot-analysis", overview.TopTools[0].ToolSlug)
	assert.InDelta(t, 0.2, overview.FailureRate(), 0.0001)
}

func TestAnalyticsRepository_PurgeBefore(t *testing.T) {
	repo := NewAnalyticsRepository(setupTestDB(t), testLogger())
	ctx := context.Background()
	now := time.Now().UTC()
	uid := uint(9)

	recordRun(t, repo, &uid, "swot-analysis", true, now.AddDate(0, 0, -200))
	recordRun(t, repo, &uid, "swot-analysis", true, now.AddDate(0, 0, -181))
	recordRun(t, repo, &uid, "swot-analysis", true, now.AddDate(0, 0, -10))

	n, err := repo.PurgeBefore(ctx, now.AddDate(0, 0, -180))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	overview, err := repo.Overview(ctx, now.AddDate(-1, 0, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.TotalRuns)
}
