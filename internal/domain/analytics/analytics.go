// Package analytics records tool runs and summarizes them.
package analytics

import (
	"context"
	"time"
)

// ToolRunEvent is one attempt to run a tool. UserID is nil for anonymous
// runs of public tools.
type ToolRunEvent struct {
	ID        uint
	UserID    *uint
	ToolSlug  string
	Success   bool
	ErrorType string
	LatencyMs int64
	CreatedAt time.Time
}

type ToolStat struct {
	ToolSlug string
	Runs     int64
	Failures int64
}

type UserSummary struct {
	TotalRuns      int64
	SuccessfulRuns int64
	ByTool         []ToolStat
	Recent         []*ToolRunEvent
}

type Overview struct {
	TotalRuns   int64
	FailedRuns  int64
	UniqueUsers int64
	TopTools    []ToolStat
	Since       time.Time
}

// FailureRate is the share of failed runs, 0 when there were none.
func (o *Overview) FailureRate() float64 {
	if o.TotalRuns == 0 {
		return 0
	}
	return float64(o.FailedRuns) / float64(o.TotalRuns)
}

type Repository interface {
	Record(ctx context.Context, event *ToolRunEvent) error
	UserSummary(ctx context.Context, userID uint, since time.Time, recent int) (*UserSummary, error)
	Overview(ctx context.Context, since time.Time, top int) (*Overview, error)
	// PurgeBefore deletes events created before cutoff and returns how many went.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
