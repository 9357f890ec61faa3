// Package scheduler runs periodic housekeeping jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// SessionSweeper removes sessions whose refresh window has passed.
type SessionSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// EventPurger removes tool run events older than a cutoff.
type EventPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PolicyReloader re-reads authorization rules from storage.
type PolicyReloader interface {
	LoadPolicy() error
}

// SchedulerManager owns a single gocron scheduler for all background jobs.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler whose cron expressions are read in
// the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log.Named("scheduler"),
	}, nil
}

// RegisterSessionCleanupJob deletes expired sessions every hour, starting now.
func (m *SchedulerManager) RegisterSessionCleanupJob(sessions SessionSweeper) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.sweepSessions(ctx, sessions)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("auth", "cleanup"),
		gocron.WithName("session-cleanup"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered session cleanup job", "interval", "1h")
	return nil
}

func (m *SchedulerManager) sweepSessions(ctx context.Context, sessions SessionSweeper) {
	start := biztime.NowUTC()
	n, err := sessions.DeleteExpired(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("session cleanup failed", "error", err, "duration", time.Since(start))
		return
	}
	if n > 0 {
		m.logger.Infow("expired sessions deleted", "count", n, "duration", time.Since(start))
	}
}

// RegisterAnalyticsRetentionJob purges tool run events older than
// retentionDays at 03:30 business time. A non-positive retention keeps
// events forever and registers nothing.
func (m *SchedulerManager) RegisterAnalyticsRetentionJob(events EventPurger, retentionDays int) error {
	if retentionDays <= 0 {
		m.logger.Infow("analytics retention disabled")
		return nil
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob("30 3 * * *", false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			m.purgeEvents(ctx, events, retentionDays, biztime.NowUTC())
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("analytics", "cleanup"),
		gocron.WithName("analytics-retention"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered analytics retention job", "retention_days", retentionDays)
	return nil
}

func (m *SchedulerManager) purgeEvents(ctx context.Context, events EventPurger, retentionDays int, now time.Time) {
	cutoff := biztime.DaysAgoUTC(now, retentionDays)
	n, err := events.PurgeBefore(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("analytics retention failed", "error", err, "cutoff", cutoff)
		return
	}
	m.logger.Infow("old tool run events purged", "count", n, "cutoff", cutoff)
}

// RegisterPolicyReloadJob reloads authorization rules every interval so
// changes made through another instance are picked up.
func (m *SchedulerManager) RegisterPolicyReloadJob(policies PolicyReloader, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := policies.LoadPolicy(); err != nil {
				m.logger.Errorw("policy reload failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("auth"),
		gocron.WithName("policy-reload"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered policy reload job", "interval", interval.String())
	return nil
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to finish, then stops the scheduler.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler stopped")
	return nil
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
