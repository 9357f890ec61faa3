package usecases

import (
	"context"

	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/domain/user"
)

// transactor runs fn inside one database transaction.
type transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type userLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// PlanFields are the writable attributes shared by create and update.
type PlanFields struct {
	Slug             string
	Name             string
	Description      string
	Price            uint64
	Currency         string
	Interval         string
	IsDefault        bool
	AllTools         bool
	DefaultToolLimit int
	SortOrder        int
}

func (f PlanFields) attributes() plan.Attributes {
	return plan.Attributes{
		Slug:             f.Slug,
		Name:             f.Name,
		Description:      f.Description,
		Price:            f.Price,
		Currency:         f.Currency,
		Interval:         plan.Interval(f.Interval),
		IsDefault:        f.IsDefault,
		AllTools:         f.AllTools,
		DefaultToolLimit: f.DefaultToolLimit,
		SortOrder:        f.SortOrder,
	}
}
