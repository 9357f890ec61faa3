package plan

import "errors"

var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrPlanSlugExists      = errors.New("plan slug already exists")
	ErrPlanInUse           = errors.New("plan has subscribers")
	ErrNoDefaultPlan       = errors.New("no default plan configured")
	ErrDefaultPlanInactive = errors.New("the default plan cannot be deactivated")
)
