package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/platform/cache"
)

// TaskInterestSweep schedules the daily interest calculation and capitalization.
const TaskInterestSweep = "savings:interest_sweep"

// InterestSweepPayload identifies who asked for the run.
type InterestSweepPayload struct {
	Trigger string `json:"trigger"`
}

// Sweeper runs one pass of the interest engine.
type Sweeper interface {
	SweepAllAccounts(ctx context.Context) (*domain.SweepReport, error)
}

// SweepLocker hands out the lock that keeps sweeps from overlapping.
type SweepLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (*cache.Lock, error)
}

// InterestSweepJob runs the sweep under a distributed lock.
type InterestSweepJob struct {
	Sweeper Sweeper
	Locker  SweepLocker
	LockTTL time.Duration
	Logger  *slog.Logger
	Metrics *Metrics
}

// NewInterestSweepJob constructs the job handler. A nil locker runs sweeps unguarded.
func NewInterestSweepJob(sweeper Sweeper, locker SweepLocker, lockTTL time.Duration, logger *slog.Logger, metrics *Metrics) *InterestSweepJob {
	return &InterestSweepJob{Sweeper: sweeper, Locker: locker, LockTTL: lockTTL, Logger: logger, Metrics: metrics}
}

// NewInterestSweepTask creates an Asynq task for the sweep.
func NewInterestSweepTask(trigger string) (*asynq.Task, error) {
	if trigger == "" {
		trigger = "cron"
	}
	body, err := json.Marshal(InterestSweepPayload{Trigger: trigger})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInterestSweep, body, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}

// Handle executes one sweep. A run that finds the lock taken is a no-op; a run with failed
// accounts returns an error so Asynq retries it, and accounts already capitalized are not due again.
func (j *InterestSweepJob) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil || j.Sweeper == nil {
		return errors.New("interest sweep: dependencies not configured")
	}
	var payload InterestSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		j.log().Error("Malformed interest sweep payload", slog.Any("error", err))
		return asynq.SkipRetry
	}
	logger := j.log().With(slog.String("trigger", payload.Trigger))

	tracker := j.Metrics.Track(TaskInterestSweep)

	if j.Locker != nil {
		lock, err := j.Locker.Acquire(ctx, cache.SweepLockKey, j.lockTTL())
		if errors.Is(err, cache.ErrLockHeld) {
			logger.Info("Interest sweep already running elsewhere, skipping")
			tracker.Skip()
			return nil
		}
		if err != nil {
			logger.Error("Failed to acquire sweep lock", slog.Any("error", err))
			return tracker.End(err)
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("Failed to release sweep lock", slog.Any("error", err))
			}
		}()
	}

	report, err := j.Sweeper.SweepAllAccounts(ctx)
	if err != nil {
		logger.Error("Interest sweep failed", slog.Any("error", err))
		return tracker.End(err)
	}
	j.Metrics.AddSweepReport(report)
	logger.Info("Interest sweep finished",
		slog.String("run_id", report.RunID),
		slog.Int("examined", report.Examined),
		slog.Int("capitalized", report.Capitalized),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Bool("cancelled", report.Cancelled),
	)

	switch {
	case report.Cancelled:
		return tracker.End(fmt.Errorf("interest sweep %s cancelled after %d account(s)", report.RunID, report.Examined))
	case report.Failed > 0:
		return tracker.End(fmt.Errorf("interest sweep %s: %d account(s) failed", report.RunID, report.Failed))
	}
	return tracker.End(nil)
}

func (j *InterestSweepJob) lockTTL() time.Duration {
	if j.LockTTL <= 0 {
		return 30 * time.Minute
	}
	return j.LockTTL
}

func (j *InterestSweepJob) log() *slog.Logger {
	if j.Logger == nil {
		return slog.Default().With(slog.String("job", TaskInterestSweep))
	}
	return j.Logger.With(slog.String("job", TaskInterestSweep))
}
