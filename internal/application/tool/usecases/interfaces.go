package usecases

import (
	"context"

	"github.com/consultkit/consultkit/internal/domain/analytics"
	"github.com/consultkit/consultkit/internal/domain/usage"
)

// QuotaGate evaluates and meters a signed-in user's runs of a tool. A run is
// reserved before the provider is called, then confirmed or released.
type QuotaGate interface {
	Evaluate(ctx context.Context, userID uint, toolSlug string) (usage.Quota, error)
	Reserve(ctx context.Context, userID uint, q usage.Quota) (usage.Reservation, error)
	Release(ctx context.Context, userID uint, r usage.Reservation) error
	Confirm(userID uint, toolName string, r usage.Reservation)
}

type RunEventRecorder interface {
	Record(ctx context.Context, event *analytics.ToolRunEvent) error
}
