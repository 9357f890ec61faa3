package usecases

import (
	"context"
	"time"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type mockPlanRepository struct {
	GetByIDFunc    func(ctx context.Context, id uint) (*plan.Plan, error)
	GetDefaultFunc func(ctx context.Context) (*plan.Plan, error)
}

func (m *mockPlanRepository) Create(ctx context.Context, p *plan.Plan) error { return nil }
func (m *mockPlanRepository) GetBySlug(ctx context.Context, slug string) (*plan.Plan, error) {
	return nil, nil
}
func (m *mockPlanRepository) Update(ctx context.Context, p *plan.Plan) error { return nil }
func (m *mockPlanRepository) Delete(ctx context.Context, id uint) error      { return nil }
func (m *mockPlanRepository) List(ctx context.Context, filter plan.ListFilter) ([]*plan.Plan, int64, error) {
	return nil, 0, nil
}
func (m *mockPlanRepository) ClearDefault(ctx context.Context, keepID uint) error { return nil }

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetDefault(ctx context.Context) (*plan.Plan, error) {
	if m.GetDefaultFunc != nil {
		return m.GetDefaultFunc(ctx)
	}
	return nil, nil
}

type mockPlanToolRepository struct {
	GetFunc        func(ctx context.Context, planID uint, toolSlug string) (*plan.PlanTool, error)
	ListByPlanFunc func(ctx context.Context, planID uint) ([]*plan.PlanTool, error)
}

func (m *mockPlanToolRepository) Get(ctx context.Context, planID uint, toolSlug string) (*plan.PlanTool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, planID, toolSlug)
	}
	return nil, nil
}

func (m *mockPlanToolRepository) ListByPlan(ctx context.Context, planID uint) ([]*plan.PlanTool, error) {
	if m.ListByPlanFunc != nil {
		return m.ListByPlanFunc(ctx, planID)
	}
	return nil, nil
}

func (m *mockPlanToolRepository) Replace(ctx context.Context, planID uint, tools []*plan.PlanTool) error {
	return nil
}

type mockSubscriptionRepository struct {
	GetByUserIDFunc func(ctx context.Context, userID uint) (*plan.Subscription, error)
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*plan.Subscription, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Save(ctx context.Context, sub *plan.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) CountByPlanID(ctx context.Context, planID uint) (int64, error) {
	return 0, nil
}

type mockUsageRepository struct {
	CountFunc        func(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) (int, error)
	ReserveFunc      func(ctx context.Context, userID uint, toolSlug string, period usage.Period, limit int) (int, error)
	ReleaseFunc      func(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) error
	ListByPeriodFunc func(ctx context.Context, userID uint, periodStart time.Time) ([]*usage.Counter, error)
}

func (m *mockUsageRepository) Count(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID, toolSlug, periodStart)
	}
	return 0, nil
}

func (m *mockUsageRepository) Reserve(ctx context.Context, userID uint, toolSlug string, period usage.Period, limit int) (int, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, userID, toolSlug, period, limit)
	}
	return 1, nil
}

func (m *mockUsageRepository) Release(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, userID, toolSlug, periodStart)
	}
	return nil
}

func (m *mockUsageRepository) ListByPeriod(ctx context.Context, userID uint, periodStart time.Time) ([]*usage.Counter, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, userID, periodStart)
	}
	return nil, nil
}

type mockUserLookup struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserLookup) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockPreferenceLookup struct {
	GetFunc func(ctx context.Context, userID uint) (*preference.Preferences, error)
}

func (m *mockPreferenceLookup) Get(ctx context.Context, userID uint) (*preference.Preferences, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, nil
}

type mockQuotaMailer struct {
	sent []QuotaMail
	err  error
}

func (m *mockQuotaMailer) SendQuotaReached(ctx context.Context, mail QuotaMail) error {
	m.sent = append(m.sent, mail)
	return m.err
}

type reachedEvent struct {
	userID   uint
	toolName string
	quota    usage.Quota
}

type chanQuotaHandler chan reachedEvent

func (h chanQuotaHandler) QuotaReached(ctx context.Context, userID uint, toolName string, q usage.Quota) {
	h <- reachedEvent{userID: userID, toolName: toolName, quota: q}
}

func testLogger() logger.Interface {
	return logger.NewNopLogger()
}
