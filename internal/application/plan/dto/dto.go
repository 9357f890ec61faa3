package dto

import (
	"time"

	"github.com/consultkit/consultkit/internal/domain/plan"
)

type PlanToolDTO struct {
	ToolSlug     string `json:"tool_slug"`
	Enabled      bool   `json:"enabled"`
	MonthlyLimit *int   `json:"monthly_limit,omitempty"`
}

type PlanDTO struct {
	ID               uint          `json:"id"`
	Slug             string        `json:"slug"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Price            uint64        `json:"price"`
	Currency         string        `json:"currency"`
	Interval         string        `json:"interval"`
	Status           string        `json:"status"`
	IsDefault        bool          `json:"is_default"`
	AllTools         bool          `json:"all_tools"`
	DefaultToolLimit int           `json:"default_tool_limit"`
	SortOrder        int           `json:"sort_order"`
	Tools            []PlanToolDTO `json:"tools,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type SubscriptionDTO struct {
	ID                 uint       `json:"id"`
	UserID             uint       `json:"user_id"`
	PlanID             uint       `json:"plan_id"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CanceledAt         *time.Time `json:"canceled_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToPlanDTO(p *plan.Plan, tools []*plan.PlanTool) *PlanDTO {
	if p == nil {
		return nil
	}
	out := &PlanDTO{
		ID:               p.ID(),
		Slug:             p.Slug(),
		Name:             p.Name(),
		Description:      p.Description(),
		Price:            p.Price(),
		Currency:         p.Currency(),
		Interval:         string(p.Interval()),
		Status:           string(p.Status()),
		IsDefault:        p.IsDefault(),
		AllTools:         p.AllTools(),
		DefaultToolLimit: p.DefaultToolLimit(),
		SortOrder:        p.SortOrder(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
	for _, pt := range tools {
		out.Tools = append(out.Tools, PlanToolDTO{
			ToolSlug:     pt.ToolSlug,
			Enabled:      pt.Enabled,
			MonthlyLimit: pt.MonthlyLimit,
		})
	}
	return out
}

func ToPlanDTOs(plans []*plan.Plan) []*PlanDTO {
	out := make([]*PlanDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, ToPlanDTO(p, nil))
	}
	return out
}

func ToSubscriptionDTO(s *plan.Subscription) *SubscriptionDTO {
	if s == nil {
		return nil
	}
	out := &SubscriptionDTO{
		ID:         s.ID(),
		UserID:     s.UserID(),
		PlanID:     s.PlanID(),
		Status:     string(s.Status()),
		CanceledAt: s.CanceledAt(),
		UpdatedAt:  s.UpdatedAt(),
	}
	if s.HasPeriod() {
		start, end := s.CurrentPeriodStart(), s.CurrentPeriodEnd()
		out.CurrentPeriodStart = &start
		out.CurrentPeriodEnd = &end
	}
	return out
}
