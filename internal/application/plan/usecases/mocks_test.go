package usecases

import (
	"context"
	"sort"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/infrastructure/catalog"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memPlanRepository struct {
	plans  map[uint]*plan.Plan
	nextID uint
}

func newMemPlanRepository(plans ...*plan.Plan) *memPlanRepository {
	r := &memPlanRepository{plans: make(map[uint]*plan.Plan), nextID: 1}
	for _, p := range plans {
		_ = r.Create(context.Background(), p)
	}
	return r
}

func (r *memPlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	for _, existing := range r.plans {
		if existing.Slug() == p.Slug() {
			return plan.ErrPlanSlugExists
		}
	}
	if err := p.SetID(r.nextID); err != nil {
		return err
	}
	r.plans[r.nextID] = p
	r.nextID++
	return nil
}

func (r *memPlanRepository) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	return r.plans[id], nil
}

func (r *memPlanRepository) GetBySlug(ctx context.Context, slug string) (*plan.Plan, error) {
	for _, p := range r.plans {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPlanRepository) GetDefault(ctx context.Context) (*plan.Plan, error) {
	for _, p := range r.plans {
		if p.IsDefault() && p.IsActive() {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	for id, existing := range r.plans {
		if id != p.ID() && existing.Slug() == p.Slug() {
			return plan.ErrPlanSlugExists
		}
	}
	if _, ok := r.plans[p.ID()]; !ok {
		return plan.ErrPlanNotFound
	}
	r.plans[p.ID()] = p
	return nil
}

func (r *memPlanRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := r.plans[id]; !ok {
		return plan.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *memPlanRepository) List(ctx context.Context, filter plan.ListFilter) ([]*plan.Plan, int64, error) {
	var out []*plan.Plan
	for _, p := range r.plans {
		if filter.Status == "" || string(p.Status()) == filter.Status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, int64(len(out)), nil
}

func (r *memPlanRepository) ClearDefault(ctx context.Context, keepID uint) error {
	for id, p := range r.plans {
		if id == keepID || !p.IsDefault() {
			continue
		}
		attrs := p.Attributes()
		attrs.IsDefault = false
		if err := p.Update(attrs); err != nil {
			return err
		}
	}
	return nil
}

type memPlanToolRepository struct {
	tools map[uint][]*plan.PlanTool
}

func newMemPlanToolRepository() *memPlanToolRepository {
	return &memPlanToolRepository{tools: make(map[uint][]*plan.PlanTool)}
}

func (r *memPlanToolRepository) Get(ctx context.Context, planID uint, slug string) (*plan.PlanTool, error) {
	for _, pt := range r.tools[planID] {
		if pt.ToolSlug == slug {
			return pt, nil
		}
	}
	return nil, nil
}

func (r *memPlanToolRepository) ListByPlan(ctx context.Context, planID uint) ([]*plan.PlanTool, error) {
	return r.tools[planID], nil
}

func (r *memPlanToolRepository) Replace(ctx context.Context, planID uint, tools []*plan.PlanTool) error {
	r.tools[planID] = tools
	return nil
}

type mockSubscriptionRepository struct {
	subs        map[uint]*plan.Subscription
	countByPlan map[uint]int64
}

func newMockSubscriptionRepository() *mockSubscriptionRepository {
	return &mockSubscriptionRepository{
		subs:        make(map[uint]*plan.Subscription),
		countByPlan: make(map[uint]int64),
	}
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*plan.Subscription, error) {
	return m.subs[userID], nil
}

func (m *mockSubscriptionRepository) Save(ctx context.Context, sub *plan.Subscription) error {
	if sub.ID() == 0 {
		if err := sub.SetID(uint(len(m.subs) + 1)); err != nil {
			return err
		}
	}
	m.subs[sub.UserID()] = sub
	return nil
}

func (m *mockSubscriptionRepository) CountByPlanID(ctx context.Context, planID uint) (int64, error) {
	return m.countByPlan[planID], nil
}

type mockUserLookup struct {
	users map[uint]*user.User
}

func (m *mockUserLookup) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func mustPlan(attrs plan.Attributes) *plan.Plan {
	p, err := plan.NewPlan(attrs)
	if err != nil {
		panic(err)
	}
	return p
}

func mustTool(slug string) *tool.Tool {
	t, err := tool.NewTool(tool.Definition{
		Slug:           slug,
		Name:           slug,
		Category:       "strategy",
		SystemPrompt:   "You are a consultant.",
		PromptTemplate: "Company: {{.company}}",
		OutputKey:      "analysis",
		Fields:         []tool.Field{{Name: "company", Label: "Company", Required: true}},
	})
	if err != nil {
		panic(err)
	}
	return t
}

func testCatalog() tool.Catalog {
	return catalog.NewRegistry([]*tool.Tool{mustTool("swot-analysis"), mustTool("budget-planner")})
}

func testLogger() logger.Interface {
	return logger.NewNopLogger()
}
