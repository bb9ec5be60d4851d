package scheduler

import (
	"context"

	"go.uber.org/zap"
)

// ExpirySweepJobName identifies the food expiry sweep
const ExpirySweepJobName = "food-expiry-sweep"

// DefaultExpirySweepSchedule runs the sweep shortly after midnight
const DefaultExpirySweepSchedule = "5 0 * * *"

// ExpirySweeper flags food items whose expiry date has passed
type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// ExpirySweepJob marks past-expiry food items as expired
type ExpirySweepJob struct {
	sweeper ExpirySweeper
	logger  *zap.Logger
	onSwept func(n int64)
}

// NewExpirySweepJob creates the sweep job. onSwept, when set, receives the
// number of items flagged by each run.
func NewExpirySweepJob(sweeper ExpirySweeper, logger *zap.Logger, onSwept func(n int64)) *ExpirySweepJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpirySweepJob{sweeper: sweeper, logger: logger, onSwept: onSwept}
}

func (j *ExpirySweepJob) Name() string {
	return ExpirySweepJobName
}

func (j *ExpirySweepJob) Run(ctx context.Context) error {
	n, err := j.sweeper.SweepExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		j.logger.Info("Flagged expired food items", zap.Int64("count", n))
	}
	if j.onSwept != nil {
		j.onSwept(n)
	}
	return nil
}
