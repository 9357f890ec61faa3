package usage

import (
	"context"
	"time"
)

type Repository interface {
	// Count returns the runs recorded for the period, 0 when none.
	Count(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) (int, error)
	// Reserve takes one run from the period, creating the counter on first
	// use, and returns the count including it. A limit of 0 or less never
	// refuses; otherwise ErrQuotaExhausted is returned once the count is at
	// limit.
	Reserve(ctx context.Context, userID uint, toolSlug string, period Period, limit int) (int, error)
	// Release gives back a run taken by Reserve.
	Release(ctx context.Context, userID uint, toolSlug string, periodStart time.Time) error
	ListByPeriod(ctx context.Context, userID uint, periodStart time.Time) ([]*Counter, error)
}
