package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// PlanModel represents the database persistence model for plans
type PlanModel struct {
	ID               uint   `gorm:"primarykey"`
	Slug             string `gorm:"uniqueIndex;not null;size:100"`
	Name             string `gorm:"not null;size:100"`
	Description      string `gorm:"size:1000"`
	Price            uint64 `gorm:"not null;default:0"`
	Currency         string `gorm:"not null;size:3"`
	Interval         string `gorm:"column:billing_interval;not null;size:20"`
	Status           string `gorm:"not null;size:20;default:active;index"`
	IsDefault        bool   `gorm:"not null;default:false"`
	AllTools         bool   `gorm:"not null;default:false"`
	DefaultToolLimit int    `gorm:"not null;default:0"`
	SortOrder        int    `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}

// BeforeCreate hook for GORM
func (p *PlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = "active"
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return nil
}
