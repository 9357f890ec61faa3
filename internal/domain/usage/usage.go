// Package usage meters tool runs per user, tool and period.
package usage

import (
	"time"

	"github.com/consultkit/consultkit/internal/domain/plan"
)

// Counter is the number of runs of one tool by one user in one period. A run
// is reserved before the provider is called and given back if the run fails.
type Counter struct {
	ID          uint
	UserID      uint
	ToolSlug    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Count       int
	UpdatedAt   time.Time
}

// Period is a half-open usage window [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Quota is the outcome of evaluating a user's access to one tool.
type Quota struct {
	ToolSlug    string
	HasAccess   bool
	Unlimited   bool
	Limit       int
	Used        int
	Remaining   int
	PeriodStart time.Time
	PeriodEnd   time.Time
}

func NewQuota(toolSlug string, access plan.Access, used int, period Period) Quota {
	q := Quota{
		ToolSlug:    toolSlug,
		HasAccess:   access.Allowed,
		Unlimited:   access.Unlimited(),
		Limit:       access.Limit,
		Used:        used,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
	}
	if q.HasAccess && !q.Unlimited {
		q.Remaining = max(q.Limit-used, 0)
	}
	return q
}

// Exhausted reports whether a limited tool has no runs left this period.
func (q Quota) Exhausted() bool {
	return q.HasAccess && !q.Unlimited && q.Remaining == 0
}

// Reservation is one run taken from a quota before the tool is run.
type Reservation struct {
	Quota Quota
	// Count is the period's counter including this run.
	Count int
}

// FillsQuota reports whether this run used up the last run of a limited plan.
func (r Reservation) FillsQuota() bool {
	return r.Quota.HasAccess && !r.Quota.Unlimited && r.Count == r.Quota.Limit
}
