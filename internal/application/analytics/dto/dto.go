package dto

import (
	"time"

	"github.com/consultkit/consultkit/internal/domain/analytics"
)

type ToolStatDTO struct {
	ToolSlug string `json:"tool_slug"`
	Runs     int64  `json:"runs"`
	Failures int64  `json:"failures"`
}

type RunDTO struct {
	ToolSlug  string    `json:"tool_slug"`
	Success   bool      `json:"success"`
	ErrorType string    `json:"error_type,omitempty"`
	LatencyMs int64     `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

type UserAnalyticsDTO struct {
	Days           int           `json:"days"`
	TotalRuns      int64         `json:"total_runs"`
	SuccessfulRuns int64         `json:"successful_runs"`
	ByTool         []ToolStatDTO `json:"by_tool"`
	Recent         []RunDTO      `json:"recent"`
}

type OverviewDTO struct {
	Days        int           `json:"days"`
	Since       time.Time     `json:"since"`
	TotalRuns   int64         `json:"total_runs"`
	FailedRuns  int64         `json:"failed_runs"`
	FailureRate float64       `json:"failure_rate"`
	UniqueUsers int64         `json:"unique_users"`
	TopTools    []ToolStatDTO `json:"top_tools"`
}

func toToolStats(stats []analytics.ToolStat) []ToolStatDTO {
	out := make([]ToolStatDTO, 0, len(stats))
	for _, s := range stats {
		out = append(out, ToolStatDTO(s))
	}
	return out
}

func ToUserAnalyticsDTO(days int, s *analytics.UserSummary) *UserAnalyticsDTO {
	out := &UserAnalyticsDTO{
		Days:           days,
		TotalRuns:      s.TotalRuns,
		SuccessfulRuns: s.SuccessfulRuns,
		ByTool:         toToolStats(s.ByTool),
		Recent:         make([]RunDTO, 0, len(s.Recent)),
	}
	for _, e := range s.Recent {
		out.Recent = append(out.Recent, RunDTO{
			ToolSlug:  e.ToolSlug,
			Success:   e.Success,
			ErrorType: e.ErrorType,
			LatencyMs: e.LatencyMs,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

func ToOverviewDTO(days int, o *analytics.Overview) *OverviewDTO {
	return &OverviewDTO{
		Days:        days,
		Since:       o.Since,
		TotalRuns:   o.TotalRuns,
		FailedRuns:  o.FailedRuns,
		FailureRate: o.FailureRate(),
		UniqueUsers: o.UniqueUsers,
		TopTools:    toToolStats(o.TopTools),
	}
}
