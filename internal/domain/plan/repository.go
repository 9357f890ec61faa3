package plan

import "context"

// Repository methods return (nil, nil) when a lookup finds nothing.
type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetBySlug(ctx context.Context, slug string) (*Plan, error)
	// GetDefault returns the active plan flagged is_default.
	GetDefault(ctx context.Context) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*Plan, int64, error)
	// ClearDefault unsets is_default on every plan except keepID.
	ClearDefault(ctx context.Context, keepID uint) error
}

type ListFilter struct {
	Status   string
	Page     int
	PageSize int
}

type PlanToolRepository interface {
	Get(ctx context.Context, planID uint, toolSlug string) (*PlanTool, error)
	ListByPlan(ctx context.Context, planID uint) ([]*PlanTool, error)
	// Replace swaps the plan's full tool list.
	Replace(ctx context.Context, planID uint, tools []*PlanTool) error
}

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*Subscription, error)
	Save(ctx context.Context, sub *Subscription) error
	CountByPlanID(ctx context.Context, planID uint) (int64, error)
}
