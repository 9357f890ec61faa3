package plan

import "time"

// PlanTool overrides a plan's access rule for one tool. A nil MonthlyLimit
// inherits the plan's default tool limit; 0 means unlimited.
type PlanTool struct {
	ID           uint
	PlanID       uint
	ToolSlug     string
	Enabled      bool
	MonthlyLimit *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Access is the resolved rule for one (plan, tool) pair.
type Access struct {
	Allowed bool
	// Limit is the number of runs per period; 0 means unlimited.
	Limit int
}

func (a Access) Unlimited() bool {
	return a.Allowed && a.Limit == 0
}

// ResolveAccess applies a plan and its optional tool row. An explicit row
// wins over the plan's all_tools flag, so a disabled row blocks a tool even
// on an all-tools plan.
func ResolveAccess(p *Plan, pt *PlanTool) Access {
	if p == nil {
		return Access{}
	}
	if pt != nil {
		if !pt.Enabled {
			return Access{}
		}
		limit := p.defaultToolLimit
		if pt.MonthlyLimit != nil {
			limit = *pt.MonthlyLimit
		}
		return Access{Allowed: true, Limit: limit}
	}
	if p.allTools {
		return Access{Allowed: true, Limit: p.defaultToolLimit}
	}
	return Access{}
}
