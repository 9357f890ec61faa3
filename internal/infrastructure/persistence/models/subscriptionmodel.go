package models

import (
	"time"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
type SubscriptionModel struct {
	ID                 uint   `gorm:"primarykey"`
	UserID             uint   `gorm:"not null;uniqueIndex"`
	PlanID             uint   `gorm:"not null;index:idx_plan_subscription"`
	Status             string `gorm:"not null;size:20;index:idx_status"`
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CanceledAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
