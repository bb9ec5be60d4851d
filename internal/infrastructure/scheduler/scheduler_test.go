package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

type mockSweeper struct {
	mock.Mock
}

func (m *mockSweeper) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestScheduler_RegisterValidatesSpec(t *testing.T) {
	s := New(DefaultConfig(), nil)

	err := s.Register("not a cron spec", funcJob{name: "bad", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	job := funcJob{name: "ok", fn: func(context.Context) error { return nil }}
	require.NoError(t, s.Register("@daily", job))
	assert.ErrorIs(t, s.Register("@hourly", job), ErrJobAlreadyRegistered)
}

func TestScheduler_RunNowRecordsOutcome(t *testing.T) {
	s := New(DefaultConfig(), nil)
	var calls atomic.Int32
	boom := errors.New("boom")
	require.NoError(t, s.Register("@daily", funcJob{name: "ok", fn: func(context.Context) error {
		calls.Add(1)
		return nil
	}}))
	require.NoError(t, s.Register("@daily", funcJob{name: "fails", fn: func(context.Context) error { return boom }}))

	info, ok := s.LastRun("ok")
	require.True(t, ok)
	assert.Equal(t, JobStatusPending, info.Status)

	require.NoError(t, s.RunNow("ok"))
	assert.Equal(t, int32(1), calls.Load())
	info, _ = s.LastRun("ok")
	assert.Equal(t, JobStatusSuccess, info.Status)
	assert.NotNil(t, info.CompletedAt)

	assert.ErrorIs(t, s.RunNow("fails"), boom)
	info, _ = s.LastRun("fails")
	assert.Equal(t, JobStatusFailed, info.Status)
	assert.Equal(t, "boom", info.Error)

	assert.ErrorIs(t, s.RunNow("missing"), ErrJobNotFound)
}

func TestScheduler_OnRunHook(t *testing.T) {
	cfg := DefaultConfig()
	outcomes := map[string]error{}
	cfg.OnRun = func(job string, err error) { outcomes[job] = err }
	s := New(cfg, nil)

	boom := errors.New("boom")
	require.NoError(t, s.Register("@daily", funcJob{name: "ok", fn: func(context.Context) error { return nil }}))
	require.NoError(t, s.Register("@daily", funcJob{name: "fails", fn: func(context.Context) error { return boom }}))

	require.NoError(t, s.RunNow("ok"))
	assert.ErrorIs(t, s.RunNow("fails"), boom)

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes["ok"])
	assert.ErrorIs(t, outcomes["fails"], boom)
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := New(DefaultConfig(), nil)
	require.NoError(t, s.Register("@daily", funcJob{name: "panics", fn: func(context.Context) error { panic("oops") }}))

	err := s.RunNow("panics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

func TestScheduler_JobTimeout(t *testing.T) {
	s := New(Config{JobTimeout: 20 * time.Millisecond}, nil)
	require.NoError(t, s.Register("@daily", funcJob{name: "slow", fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}))

	assert.ErrorIs(t, s.RunNow("slow"), context.DeadlineExceeded)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(DefaultConfig(), nil)
	require.NoError(t, s.Register("@daily", funcJob{name: "daily", fn: func(context.Context) error { return nil }}))

	assert.ErrorIs(t, s.Stop(context.Background()), ErrSchedulerNotRunning)

	s.Start()
	assert.True(t, s.IsRunning())
	next, ok := s.NextRun("daily")
	require.True(t, ok)
	assert.True(t, next.After(time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
}

func TestExpirySweepJob(t *testing.T) {
	sweeper := new(mockSweeper)
	sweeper.On("SweepExpired", mock.Anything).Return(int64(3), nil).Once()
	var swept int64
	job := NewExpirySweepJob(sweeper, nil, func(n int64) { swept = n })

	s := New(DefaultConfig(), nil)
	require.NoError(t, s.Register(DefaultExpirySweepSchedule, job))
	require.NoError(t, s.RunNow(ExpirySweepJobName))

	assert.Equal(t, int64(3), swept)
	sweeper.AssertExpectations(t)
}

func TestExpirySweepJob_Error(t *testing.T) {
	sweeper := new(mockSweeper)
	sweeper.On("SweepExpired", mock.Anything).Return(int64(0), errors.New("db down"))
	called := false
	job := NewExpirySweepJob(sweeper, nil, func(int64) { called = true })

	err := job.Run(context.Background())
	assert.EqualError(t, err, "db down")
	assert.False(t, called)
}
