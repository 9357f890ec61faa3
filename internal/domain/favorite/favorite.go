package favorite

import (
	"context"
	"time"
)

// Favorite marks a tool a user wants quick access to.
type Favorite struct {
	ID        uint
	UserID    uint
	ToolSlug  string
	CreatedAt time.Time
}

type Repository interface {
	// Add is idempotent: adding an existing favorite succeeds without change.
	Add(ctx context.Context, fav *Favorite) error
	Remove(ctx context.Context, userID uint, toolSlug string) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]*Favorite, error)
}
