package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/shared/logger"
)

type fakeSessions struct {
	calls int
	err   error
}

func (f *fakeSessions) DeleteExpired(ctx context.Context) (int64, error) {
	f.calls++
	return 3, f.err
}

type fakeEvents struct {
	cutoff time.Time
	err    error
}

func (f *fakeEvents) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 7, f.err
}

type fakePolicies struct {
	loads atomic.Int32
}

func (f *fakePolicies) LoadPolicy() error {
	f.loads.Add(1)
	return nil
}

func newTestManager(t *testing.T) *SchedulerManager {
	t.Helper()
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Stop() })
	return m
}

func TestRegisterJobs(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.RegisterSessionCleanupJob(&fakeSessions{}))
	require.NoError(t, m.RegisterAnalyticsRetentionJob(&fakeEvents{}, 180))
	require.NoError(t, m.RegisterPolicyReloadJob(&fakePolicies{}, 5*time.Minute))

	names := make([]string, 0, 3)
	for _, j := range m.Jobs() {
		names = append(names, j.Name())
	}
	assert.ElementsMatch(t, []string{"session-cleanup", "analytics-retention", "policy-reload"}, names)
}

func TestRegisterAnalyticsRetentionJob_Disabled(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.RegisterAnalyticsRetentionJob(&fakeEvents{}, 0))
	assert.Empty(t, m.Jobs())
}

func TestPurgeEvents_Cutoff(t *testing.T) {
	m := newTestManager(t)
	events := &fakeEvents{}
	now := time.Date(2025, 6, 30, 15, 4, 5, 0, time.UTC)

	m.purgeEvents(context.Background(), events, 30, now)

	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), events.cutoff)
}

func TestSweepSessions_ErrorIsSwallowed(t *testing.T) {
	m := newTestManager(t)
	sessions := &fakeSessions{err: errors.New("db down")}

	assert.NotPanics(t, func() { m.sweepSessions(context.Background(), sessions) })
	assert.Equal(t, 1, sessions.calls)
}

func TestPolicyReloadJobRuns(t *testing.T) {
	m := newTestManager(t)
	policies := &fakePolicies{}

	require.NoError(t, m.RegisterPolicyReloadJob(policies, 20*time.Millisecond))
	m.Start()

	assert.Eventually(t, func() bool { return policies.loads.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}
