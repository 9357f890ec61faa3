package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdto "github.com/consultkit/consultkit/internal/application/analytics/dto"
	favoriteusecases "github.com/consultkit/consultkit/internal/application/favorite/usecases"
	preferenceusecases "github.com/consultkit/consultkit/internal/application/preference/usecases"
	usageusecases "github.com/consultkit/consultkit/internal/application/usage/usecases"
	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/interfaces/http/handlers/testutil"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type mockUsageSummaryUC struct {
	result *usageusecases.UsageSummary
}

func (m *mockUsageSummaryUC) Execute(ctx context.Context, userID uint) (*usageusecases.UsageSummary, error) {
	return m.result, nil
}

type mockQuotaEvaluator struct {
	quota usage.Quota
	slugs []string
}

func (m *mockQuotaEvaluator) Evaluate(ctx context.Context, userID uint, slug string) (usage.Quota, error) {
	m.slugs = append(m.slugs, slug)
	q := m.quota
	q.ToolSlug = slug
	return q, nil
}

type mockFavoriteUC struct {
	err   error
	calls []string
}

func (m *mockFavoriteUC) Execute(ctx context.Context, userID uint, slug string) error {
	m.calls = append(m.calls, slug)
	return m.err
}

type mockListFavoritesUC struct{}

func (m *mockListFavoritesUC) Execute(ctx context.Context, userID uint) ([]favoriteusecases.FavoriteDTO, error) {
	return []favoriteusecases.FavoriteDTO{}, nil
}

type mockGetPreferencesUC struct{}

func (m *mockGetPreferencesUC) Execute(ctx context.Context, userID uint) (*preference.Preferences, error) {
	return preference.Defaults(userID), nil
}

type mockUpdatePreferencesUC struct {
	got preferenceusecases.UpdatePreferencesCommand
	err error
}

func (m *mockUpdatePreferencesUC) Execute(ctx context.Context, cmd preferenceusecases.UpdatePreferencesCommand) (*preference.Preferences, error) {
	m.got = cmd
	if m.err != nil {
		return nil, m.err
	}
	p := preference.Defaults(cmd.UserID)
	if err := p.Apply(cmd.Update); err != nil {
		return nil, errors.NewValidationError("Invalid preferences", err.Error())
	}
	return p, nil
}

type mockUserAnalyticsUC struct {
	gotDays int
}

func (m *mockUserAnalyticsUC) Execute(ctx context.Context, userID uint, days int) (*analyticsdto.UserAnalyticsDTO, error) {
	m.gotDays = days
	return &analyticsdto.UserAnalyticsDTO{Days: days}, nil
}

func TestUsageHandler_GetUsage(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	summary := &usageusecases.UsageSummary{
		Period: usage.Period{Start: start, End: start.AddDate(0, 1, 0)},
		Tools: []usageusecases.ToolQuota{
			{ToolName: "SWOT Analysis", Quota: usage.Quota{ToolSlug: "swot-analysis", HasAccess: true, Limit: 10, Used: 3, Remaining: 7}},
		},
	}
	h := NewUsageHandler(&mockUsageSummaryUC{result: summary}, &mockQuotaEvaluator{}, handlerTestCatalog(t), logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/usage", nil)
	testutil.SetAuthContext(c, 4)
	h.GetUsage(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data UsageSummaryResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Nil(t, data.Plan)
	require.Len(t, data.Tools, 1)
	assert.Equal(t, 7, data.Tools[0].Remaining)
	assert.Equal(t, "SWOT Analysis", data.Tools[0].ToolName)
}

func TestUsageHandler_GetToolUsage(t *testing.T) {
	evaluator := &mockQuotaEvaluator{quota: usage.Quota{HasAccess: true, Unlimited: true}}
	h := NewUsageHandler(&mockUsageSummaryUC{}, evaluator, handlerTestCatalog(t), logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/usage/tools/unknown", nil)
	testutil.SetAuthContext(c, 4)
	testutil.SetURLParam(c, "slug", "unknown")
	h.GetToolUsage(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, evaluator.slugs)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/usage/tools/budget-planner", nil)
	testutil.SetAuthContext(c, 4)
	testutil.SetURLParam(c, "slug", "budget-planner")
	h.GetToolUsage(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"budget-planner"}, evaluator.slugs)
}

func TestFavoriteHandler(t *testing.T) {
	add := &mockFavoriteUC{}
	remove := &mockFavoriteUC{err: errors.NewNotFoundError("Favorite not found")}
	h := NewFavoriteHandler(add, remove, &mockListFavoritesUC{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/favorites/swot-analysis", nil)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "slug", "swot-analysis")
	h.AddFavorite(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"swot-analysis"}, add.calls)

	c, w = testutil.NewTestContext(http.MethodDelete, "/api/favorites/swot-analysis", nil)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "slug", "swot-analysis")
	h.RemoveFavorite(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/favorites", nil)
	h.ListFavorites(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreferenceHandler_Update(t *testing.T) {
	update := &mockUpdatePreferencesUC{}
	h := NewPreferenceHandler(&mockGetPreferencesUC{}, update, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/preferences", map[string]any{
		"theme":    "dark",
		"settings": map[string]any{"compact": true},
	})
	testutil.SetAuthContext(c, 9)
	h.UpdatePreferences(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, update.got.Theme)
	assert.Equal(t, "dark", *update.got.Theme)
	assert.Nil(t, update.got.Language)
	assert.Equal(t, uint(9), update.got.UserID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data PreferencesResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "dark", data.Theme)
}

func TestPreferenceHandler_UpdateRejectsInvalidTheme(t *testing.T) {
	h := NewPreferenceHandler(&mockGetPreferencesUC{}, &mockUpdatePreferencesUC{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/preferences", map[string]any{"theme": "neon"})
	testutil.SetAuthContext(c, 9)
	h.UpdatePreferences(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandler_Days(t *testing.T) {
	tests := []struct {
		name       string
		days       string
		wantStatus int
		wantDays   int
	}{
		{"default", "", http.StatusOK, 0},
		{"explicit", "7", http.StatusOK, 7},
		{"not a number", "week", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUserAnalyticsUC{}
			h := NewAnalyticsHandler(uc, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodGet, "/api/analytics/me", nil)
			testutil.SetAuthContext(c, 1)
			if tt.days != "" {
				testutil.SetQueryParams(c, map[string]string{"days": tt.days})
			}

			h.GetMyAnalytics(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantDays, uc.gotDays)
		})
	}
}
