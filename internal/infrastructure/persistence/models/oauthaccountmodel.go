package models

import (
	"time"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// OAuthAccountModel links a user to an external identity provider account.
type OAuthAccountModel struct {
	ID             uint   `gorm:"primarykey"`
	UserID         uint   `gorm:"not null;index:idx_oauth_user_id"`
	Provider       string `gorm:"not null;size:50;uniqueIndex:idx_provider_user"`
	ProviderUserID string `gorm:"not null;size:255;uniqueIndex:idx_provider_user;column:provider_user_id"`
	ProviderEmail  string `gorm:"size:255"`
	LastLoginAt    *time.Time
	LoginCount     uint `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (OAuthAccountModel) TableName() string {
	return constants.TableOAuthAccounts
}
