package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/application/tool/usecases"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/infrastructure/catalog"
	"github.com/consultkit/consultkit/internal/interfaces/http/handlers/testutil"
	"github.com/consultkit/consultkit/internal/shared/constants"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type stubCompleter struct {
	text  string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, req tool.CompletionRequest) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubQuotaGate struct {
	quota    usage.Quota
	recorded int
}

func (s *stubQuotaGate) Evaluate(ctx context.Context, userID uint, slug string) (usage.Quota, error) {
	q := s.quota
	q.ToolSlug = slug
	return q, nil
}

func (s *stubQuotaGate) Reserve(ctx context.Context, userID uint, q usage.Quota) (usage.Reservation, error) {
	return usage.Reservation{Quota: q, Count: q.Used + 1}, nil
}

func (s *stubQuotaGate) Release(ctx context.Context, userID uint, r usage.Reservation) error {
	return nil
}

func (s *stubQuotaGate) Confirm(userID uint, toolName string, r usage.Reservation) {
	s.recorded++
}

func handlerTestCatalog(t *testing.T) tool.Catalog {
	t.Helper()
	defs := []tool.Definition{
		{
			Slug:     "swot-analysis",
			Name:     "SWOT Analysis",
			Category: "analysis",
			Fields: []tool.Field{
				{Name: "businessName", Required: true},
				{Name: "industry", Required: true},
			},
			PromptTemplate: "Business: {{.businessName}}\nIndustry: {{.industry}}",
			Public:         true,
		},
		{
			Slug:           "budget-planner",
			Name:           "Budget Planner",
			Category:       "guidance",
			Fields:         []tool.Field{{Name: "income", Required: true}},
			PromptTemplate: "Income: {{.income}}",
			OutputKey:      tool.OutputGuidance,
		},
	}

	tools := make([]*tool.Tool, 0, len(defs))
	for _, def := range defs {
		tl, err := tool.NewTool(def)
		require.NoError(t, err)
		tools = append(tools, tl)
	}
	return catalog.NewRegistry(tools)
}

func newTestToolHandler(t *testing.T, completer *stubCompleter, gate *stubQuotaGate) *ToolHandler {
	t.Helper()
	cat := handlerTestCatalog(t)
	log := logger.NewNopLogger()
	runUC := usecases.NewRunToolUseCase(cat, completer, gate, nil, nil, false, log)
	return NewToolHandler(
		usecases.NewListToolsUseCase(cat),
		usecases.NewListCategoriesUseCase(cat),
		nil,
		runUC,
		log,
	)
}

func runTool(h *ToolHandler, slug string, body any, userID *uint) (*testutil.APIResponse, map[string]any, int) {
	c, w := testutil.NewTestContext(http.MethodPost, "/api/tools/"+slug, body)
	testutil.SetURLParam(c, "slug", slug)
	if userID != nil {
		testutil.SetAuthContext(c, *userID)
	}
	h.RunTool(c)

	var resp testutil.APIResponse
	_ = testutil.ParseResponse(w, &resp)
	var data map[string]any
	if len(resp.Data) > 0 {
		_ = json.Unmarshal(resp.Data, &data)
	}
	return &resp, data, w.Code
}

func swotRequest() map[string]any {
	return map[string]any{"businessName": "Acme", "industry": "Retail"}
}

func TestRunTool_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"field absent", map[string]any{"businessName": "Acme"}},
		{"field blank", map[string]any{"businessName": "Acme", "industry": "   "}},
		{"empty body", nil},
		{"empty object", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &stubCompleter{text: `{}`}
			h := newTestToolHandler(t, completer, &stubQuotaGate{})

			resp, _, code := runTool(h, "swot-analysis", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			assert.Zero(t, completer.calls)
		})
	}
}

func TestRunTool_MalformedJSONBody(t *testing.T) {
	h := newTestToolHandler(t, &stubCompleter{}, &stubQuotaGate{})

	resp, _, code := runTool(h, "swot-analysis", `{"businessName":`, nil)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid JSON body", resp.Error)
}

func TestRunTool_JSONCompletionIsParsed(t *testing.T) {
	completer := &stubCompleter{text: `{"strengths":["brand"],"score":7}`}
	h := newTestToolHandler(t, completer, &stubQuotaGate{})

	resp, data, code := runTool(h, "swot-analysis", swotRequest(), nil)

	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]any{"strengths": []any{"brand"}, "score": float64(7)}, data["analysis"])
	assert.Equal(t, "Acme", data["businessName"])
	assert.Equal(t, "Retail", data["industry"])
}

func TestRunTool_NonJSONCompletionIsWrapped(t *testing.T) {
	completer := &stubCompleter{text: "Here is some prose."}
	h := newTestToolHandler(t, completer, &stubQuotaGate{})

	_, data, code := runTool(h, "swot-analysis", swotRequest(), nil)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{
		"rawAnalysis": "Here is some prose.",
		"message":     constants.RawAnalysisMessage,
	}, data["analysis"])
}

func TestRunTool_OutputKeyFollowsTool(t *testing.T) {
	userID := uint(7)
	h := newTestToolHandler(t, &stubCompleter{text: `{"steps":[]}`}, &stubQuotaGate{
		quota: usage.Quota{HasAccess: true, Unlimited: true},
	})

	_, data, code := runTool(h, "budget-planner", map[string]any{"income": "4000"}, &userID)

	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, data, "guidance")
	assert.NotContains(t, data, "analysis")
}

func TestRunTool_TimestampIsCurrent(t *testing.T) {
	h := newTestToolHandler(t, &stubCompleter{text: `{}`}, &stubQuotaGate{})

	before := time.Now().Add(-time.Second)
	_, data, code := runTool(h, "swot-analysis", swotRequest(), nil)
	after := time.Now().Add(time.Second)

	require.Equal(t, http.StatusOK, code)
	raw, ok := data["timestamp"].(string)
	require.True(t, ok)
	ts, err := time.Parse(time.RFC3339Nano, raw)
	require.NoError(t, err)
	assert.True(t, ts.After(before) && ts.Before(after), "timestamp %s not close to now", raw)
}

func TestRunTool_QuotaGate(t *testing.T) {
	userID := uint(3)
	tests := []struct {
		name       string
		quota      usage.Quota
		wantStatus int
		wantCalls  int
	}{
		{
			name:       "access denied",
			quota:      usage.Quota{HasAccess: false},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "quota exhausted",
			quota:      usage.Quota{HasAccess: true, Limit: 5, Used: 5, Remaining: 0, PeriodEnd: time.Now().Add(time.Hour)},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "within quota",
			quota:      usage.Quota{HasAccess: true, Limit: 5, Used: 4, Remaining: 1},
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &stubCompleter{text: `{}`}
			gate := &stubQuotaGate{quota: tt.quota}
			h := newTestToolHandler(t, completer, gate)

			resp, _, code := runTool(h, "budget-planner", map[string]any{"income": "4000"}, &userID)

			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantCalls, completer.calls)
			assert.Equal(t, tt.wantCalls, gate.recorded)
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}

func TestRunTool_PrivateToolRequiresAuth(t *testing.T) {
	completer := &stubCompleter{text: `{}`}
	h := newTestToolHandler(t, completer, &stubQuotaGate{})

	_, _, code := runTool(h, "budget-planner", map[string]any{"income": "4000"}, nil)

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Zero(t, completer.calls)
}

func TestRunTool_ProviderFailure(t *testing.T) {
	h := newTestToolHandler(t, &stubCompleter{err: errors.New("upstream timeout")}, &stubQuotaGate{})

	resp, _, code := runTool(h, "swot-analysis", swotRequest(), nil)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, constants.ErrMsgProviderFailure, resp.Error)
	assert.Empty(t, resp.Details)
}

func TestRunTool_UnknownTool(t *testing.T) {
	h := newTestToolHandler(t, &stubCompleter{}, &stubQuotaGate{})

	_, _, code := runTool(h, "nope", swotRequest(), nil)

	assert.Equal(t, http.StatusNotFound, code)
}

func TestListTools_FiltersByCategory(t *testing.T) {
	h := newTestToolHandler(t, &stubCompleter{}, &stubQuotaGate{})
	c, w := testutil.NewTestContext(http.MethodGet, "/api/tools", nil)
	testutil.SetQueryParams(c, map[string]string{"category": "guidance"})

	h.ListTools(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list struct {
		Items []struct {
			Slug string `json:"slug"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "budget-planner", list.Items[0].Slug)
}
