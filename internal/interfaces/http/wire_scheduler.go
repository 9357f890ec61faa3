package http

import (
	"fmt"
	"time"

	"github.com/consultkit/consultkit/internal/infrastructure/scheduler"
)

const policyReloadInterval = 5 * time.Minute

func (c *Container) initScheduler() error {
	m, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := m.RegisterSessionCleanupJob(c.repos.sessionRepo); err != nil {
		return fmt.Errorf("failed to register session cleanup job: %w", err)
	}
	if err := m.RegisterAnalyticsRetentionJob(c.repos.analyticsRepo, c.cfg.Analytics.RetentionDays); err != nil {
		return fmt.Errorf("failed to register analytics retention job: %w", err)
	}
	if err := m.RegisterPolicyReloadJob(c.enforcer, policyReloadInterval); err != nil {
		return fmt.Errorf("failed to register policy reload job: %w", err)
	}
	c.scheduler = m
	return nil
}

// StartBackgroundJobs starts the housekeeping scheduler.
func (c *Container) StartBackgroundJobs() {
	c.scheduler.Start()
}
