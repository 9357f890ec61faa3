package models

import (
	"time"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// SessionModel represents the database persistence model for sessions.
type SessionModel struct {
	ID               string    `gorm:"primarykey;size:64"`
	UserID           uint      `gorm:"not null;index"`
	IPAddress        string    `gorm:"size:45"`
	UserAgent        string    `gorm:"size:512"`
	RefreshTokenHash string    `gorm:"size:255;index"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	LastActivityAt   time.Time `gorm:"not null"`
	CreatedAt        time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return constants.TableSessions
}
