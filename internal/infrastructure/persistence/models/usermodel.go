package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID           uint    `gorm:"primarykey"`
	UUID         string  `gorm:"uniqueIndex;not null;size:36"`
	Email        string  `gorm:"uniqueIndex;not null;size:255"`
	Name         string  `gorm:"not null;size:100"`
	PasswordHash *string `gorm:"size:255"`
	Role         string  `gorm:"not null;size:20;default:user"`
	Status       string  `gorm:"not null;size:20;default:active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for GORM
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Status == "" {
		u.Status = constants.UserStatusActive
	}
	if u.Role == "" {
		u.Role = "user"
	}
	return nil
}
