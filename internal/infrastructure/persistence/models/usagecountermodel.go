package models

import (
	"time"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// UsageCounterModel counts successful runs of one tool by one user within a period.
type UsageCounterModel struct {
	ID          uint      `gorm:"primarykey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_usage_user_tool_period"`
	ToolSlug    string    `gorm:"not null;size:100;uniqueIndex:idx_usage_user_tool_period"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_usage_user_tool_period"`
	PeriodEnd   time.Time `gorm:"not null"`
	Count       int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (UsageCounterModel) TableName() string {
	return constants.TableUsageCounters
}
