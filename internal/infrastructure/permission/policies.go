package permission

import (
	"github.com/consultkit/consultkit/internal/shared/authorization"
)

// Resources guarded by RequirePermission.
const (
	ResourcePlans     = "plans"
	ResourceUsers     = "users"
	ResourceAnalytics = "analytics"

	ActionRead  = "read"
	ActionWrite = "write"
)

var defaultPolicies = [][]string{
	{string(authorization.RoleAdmin), ResourcePlans, ActionRead},
	{string(authorization.RoleAdmin), ResourcePlans, ActionWrite},
	{string(authorization.RoleAdmin), ResourceUsers, ActionRead},
	{string(authorization.RoleAdmin), ResourceUsers, ActionWrite},
	{string(authorization.RoleAdmin), ResourceAnalytics, ActionRead},
}

// SeedDefaultPolicies adds the built-in admin policies. Existing rows are kept.
func (e *Enforcer) SeedDefaultPolicies() error {
	added := 0
	for _, p := range defaultPolicies {
		e.mu.Lock()
		ok, err := e.enforcer.AddPolicy(p[0], p[1], p[2])
		e.mu.Unlock()
		if err != nil {
			e.logger.Errorw("failed to add default policy",
				"error", err,
				"role", p[0],
				"resource", p[1],
				"action", p[2])
			return err
		}
		if ok {
			added++
		}
	}

	e.logger.Infow("default permissions initialized", "added", added, "total", len(defaultPolicies))
	return nil
}
