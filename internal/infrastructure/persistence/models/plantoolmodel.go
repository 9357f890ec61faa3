package models

import (
	"time"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// PlanToolModel grants a plan access to a single tool. A NULL monthly limit
// inherits the plan default.
type PlanToolModel struct {
	ID           uint   `gorm:"primarykey"`
	PlanID       uint   `gorm:"not null;uniqueIndex:idx_plan_tool"`
	ToolSlug     string `gorm:"not null;size:100;uniqueIndex:idx_plan_tool"`
	Enabled      bool   `gorm:"not null;default:true"`
	MonthlyLimit *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PlanToolModel) TableName() string {
	return constants.TablePlanTools
}
