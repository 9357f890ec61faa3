package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/domain/analytics"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/infrastructure/catalog"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type mockCompleter struct {
	CompleteFunc func(ctx context.Context, req tool.CompletionRequest) (string, error)
	calls        int
}

func (m *mockCompleter) Complete(ctx context.Context, req tool.CompletionRequest) (string, error) {
	m.calls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

type mockQuotaGate struct {
	EvaluateFunc func(ctx context.Context, userID uint, toolSlug string) (usage.Quota, error)
	ReserveFunc  func(ctx context.Context, userID uint, q usage.Quota) (usage.Reservation, error)
	ReleaseFunc  func(ctx context.Context, userID uint, r usage.Reservation) error
	reserved     []usage.Quota
	released     int
	confirmed    []usage.Reservation
}

func (m *mockQuotaGate) Evaluate(ctx context.Context, userID uint, toolSlug string) (usage.Quota, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, userID, toolSlug)
	}
	return usage.Quota{ToolSlug: toolSlug, HasAccess: true, Unlimited: true}, nil
}

func (m *mockQuotaGate) Reserve(ctx context.Context, userID uint, q usage.Quota) (usage.Reservation, error) {
	m.reserved = append(m.reserved, q)
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, userID, q)
	}
	return usage.Reservation{Quota: q, Count: q.Used + 1}, nil
}

func (m *mockQuotaGate) Release(ctx context.Context, userID uint, r usage.Reservation) error {
	m.released++
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, userID, r)
	}
	return nil
}

func (m *mockQuotaGate) Confirm(userID uint, toolName string, r usage.Reservation) {
	m.confirmed = append(m.confirmed, r)
}

type chanEventRecorder chan *analytics.ToolRunEvent

func (c chanEventRecorder) Record(ctx context.Context, event *analytics.ToolRunEvent) error {
	c <- event
	return nil
}

func testLogger() logger.Interface {
	return logger.NewNopLogger()
}

func testCatalog(t *testing.T) tool.Catalog {
	t.Helper()
	defs := []tool.Definition{
		{
			Slug:        "swot-analysis",
			Name:        "SWOT Analysis",
			Category:    "analysis",
			Description: "Strengths, weaknesses, **opportunities** and threats.",
			Tags:        []string{"strategy", "Planning"},
			Fields: []tool.Field{
				{Name: "businessName", Required: true},
				{Name: "industry", Required: true},
				{Name: "notes"},
			},
			PromptTemplate: "Business: {{.businessName}}\nIndustry: {{.industry}}\nNotes: {{.notes}}",
			Public:         true,
		},
		{
			Slug:           "budget-planner",
			Name:           "Budget Planner",
			Category:       "guidance",
			Description:    "Plan a monthly budget.",
			Tags:           []string{"finance"},
			Fields:         []tool.Field{{Name: "income", Required: true}},
			PromptTemplate: "Income: {{.income}}",
			OutputKey:      tool.OutputGuidance,
		},
		{
			Slug:           "resume-review",
			Name:           "Résumé Review",
			Category:       "analysis",
			Description:    "Feedback on a CV.",
			Fields:         []tool.Field{{Name: "resume", Required: true}},
			PromptTemplate: "{{.resume}}",
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
