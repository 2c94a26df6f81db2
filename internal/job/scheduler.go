package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ReconcileFunc repairs drifted customer statistics and reports how many rows it fixed.
type ReconcileFunc func(ctx context.Context) (int, error)

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  *zap.Logger
}

// NewScheduler builds a scheduler evaluating specs in the named location.
// Overlapping runs of the same job are skipped.
func NewScheduler(location string, timeout time.Duration, logger *zap.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(location)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation: %w", err)
	}

	cl := cronLogger{logger: logger.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(cronParser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// AddReconcile schedules fn. An empty spec leaves the job disabled.
func (s *Scheduler) AddReconcile(spec string, fn ReconcileFunc) error {
	if spec == "" {
		s.logger.Info("statistics reconciliation disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.RunReconcile(context.Background(), fn) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", spec, err)
	}

	return nil
}

// RunReconcile runs one reconciliation pass. Failures are logged, the next tick retries.
func (s *Scheduler) RunReconcile(ctx context.Context, fn ReconcileFunc) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()

	repaired, err := fn(ctx)
	if err != nil {
		s.logger.Error("statistics reconciliation failed", zap.Int("repaired", repaired), zap.Error(err))
		return
	}

	s.logger.Info("statistics reconciliation done",
		zap.Int("repaired", repaired),
		zap.Duration("took", time.Since(started)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for the running ones until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
