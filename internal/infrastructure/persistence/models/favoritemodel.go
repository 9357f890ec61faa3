package models

import (
	"time"

	"github.com/consultkit/consultkit/internal/shared/constants"
)

type FavoriteModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_favorite_user_tool"`
	ToolSlug  string `gorm:"not null;size:100;uniqueIndex:idx_favorite_user_tool"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (FavoriteModel) TableName() string {
	return constants.TableFavorites
}
