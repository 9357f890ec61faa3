package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

// UserPreferenceModel stores per-user UI preferences; Settings holds free-form JSON.
type UserPreferenceModel struct {
	UserID             uint   `gorm:"primarykey;autoIncrement:false"`
	Theme              string `gorm:"not null;size:10;default:system"`
	Language           string `gorm:"not null;size:10;default:en"`
	EmailNotifications bool   `gorm:"not null;default:true"`
	DefaultCategory    string `gorm:"size:100"`
	Settings           datatypes.JSON
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (UserPreferenceModel) TableName() string {
	return constants.TableUserPreferences
}
