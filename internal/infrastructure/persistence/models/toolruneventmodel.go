package models

import (
	"time"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// ToolRunEventModel is an append-only record of a single tool run.
type ToolRunEventModel struct {
	ID        uint      `gorm:"primarykey"`
	UserID    *uint     `gorm:"index:idx_run_user_created,priority:1"`
	ToolSlug  string    `gorm:"not null;size:100;index"`
	Success   bool      `gorm:"not null"`
	ErrorType string    `gorm:"size:50"`
	LatencyMs int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;index;index:idx_run_user_created,priority:2"`
}

// TableName specifies the table name for GORM
func (ToolRunEventModel) TableName() string {
	return constants.TableToolRunEvents
}
