package usecases

import (
	"context"
	"time"

	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/domain/user"
)

// QuotaMail is the content of a quota-reached notification.
type QuotaMail struct {
	To       string
	Name     string
	ToolName string
	Limit    int
	ResetsAt time.Time
}

type QuotaMailer interface {
	SendQuotaReached(ctx context.Context, mail QuotaMail) error
}

type userLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type preferenceLookup interface {
	Get(ctx context.Context, userID uint) (*preference.Preferences, error)
}
