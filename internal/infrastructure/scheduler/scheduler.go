package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus represents the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is a unit of background work run on a cron schedule
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// RunInfo describes the most recent run of a job
type RunInfo struct {
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// Config holds scheduler configuration
type Config struct {
	// JobTimeout bounds a single run; zero means no timeout
	JobTimeout time.Duration
	// Location is the time zone schedules are evaluated in
	Location *time.Location
	// OnRun, when set, receives the outcome of every completed run
	OnRun func(job string, err error)
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		JobTimeout: 10 * time.Minute,
		Location:   time.UTC,
	}
}

type registeredJob struct {
	job     Job
	spec    string
	entryID cron.EntryID
	running sync.Mutex
	info    RunInfo
}

// Scheduler runs registered jobs on standard five-field cron specs.
// A job never overlaps with itself; a tick that finds the previous run still
// going is skipped.
type Scheduler struct {
	config Config
	cron   *cron.Cron
	logger *zap.Logger

	mu        sync.RWMutex
	jobs      map[string]*registeredJob
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a scheduler. Jobs are added with Register before Start.
func New(config Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		config: config,
		cron:   cron.New(cron.WithLocation(config.Location)),
		logger: logger,
		jobs:   make(map[string]*registeredJob),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register schedules job under spec
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrJobAlreadyRegistered, name)
	}
	rj := &registeredJob{job: job, spec: spec, info: RunInfo{Status: JobStatusPending}}
	id, err := s.cron.AddFunc(spec, func() { s.execute(rj) })
	if err != nil {
		return fmt.Errorf("%w: job %s: %v", ErrInvalidConfig, name, err)
	}
	rj.entryID = id
	s.jobs[name] = rj

	s.logger.Info("Scheduled job registered",
		zap.String("job", name),
		zap.String("schedule", spec))
	return nil
}

// Start begins firing jobs in the background
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop prevents new runs, cancels running ones and waits for them to return
// or for ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.isRunning = false
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out with jobs still running")
		return ctx.Err()
	}
}

// IsRunning reports whether Start has been called without a matching Stop
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow runs a registered job synchronously, outside its schedule
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	rj, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.execute(rj)
}

// LastRun returns the last run of the named job
func (s *Scheduler) LastRun(name string) (RunInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rj, ok := s.jobs[name]
	if !ok {
		return RunInfo{}, false
	}
	return rj.info, true
}

// NextRun returns when the named job fires next. It is zero before Start.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.RLock()
	rj, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(rj.entryID).Next, true
}

func (s *Scheduler) execute(rj *registeredJob) error {
	name := rj.job.Name()
	if !rj.running.TryLock() {
		s.logger.Warn("Skipping run, previous run still in progress", zap.String("job", name))
		return nil
	}
	defer rj.running.Unlock()

	ctx := s.ctx
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	started := time.Now()
	s.setInfo(rj, RunInfo{Status: JobStatusRunning, StartedAt: &started})
	s.logger.Debug("Job started", zap.String("job", name))

	err := s.safeRun(ctx, rj.job)

	completed := time.Now()
	info := RunInfo{Status: JobStatusSuccess, StartedAt: &started, CompletedAt: &completed}
	if err != nil {
		info.Status = JobStatusFailed
		info.Error = err.Error()
		s.logger.Error("Job failed",
			zap.String("job", name),
			zap.Duration("duration", completed.Sub(started)),
			zap.Error(err))
	} else {
		s.logger.Info("Job completed",
			zap.String("job", name),
			zap.Duration("duration", completed.Sub(started)))
	}
	s.setInfo(rj, info)
	if s.config.OnRun != nil {
		s.config.OnRun(name, err)
	}
	return err
}

func (s *Scheduler) safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name(), r)
		}
	}()
	return job.Run(ctx)
}

func (s *Scheduler) setInfo(rj *registeredJob, info RunInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rj.info = info
}
