package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fight-picks/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

type rescorer interface {
	RescoreCompletedFights(ctx context.Context) (RescoreResult, error)
}

// RescoreScheduler runs rescoring on a cron schedule with seconds precision.
type RescoreScheduler struct {
	cron       *cron.Cron
	scoring    rescorer
	jobTimeout time.Duration
	logger     *logging.Logger
}

func NewRescoreScheduler(schedule string, scoring rescorer, jobTimeout time.Duration, logger *logging.Logger) (*RescoreScheduler, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return nil, fmt.Errorf("%w: rescore schedule is required", ErrInvalidInput)
	}
	if scoring == nil {
		return nil, fmt.Errorf("%w: scoring service is required", ErrInvalidInput)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if jobTimeout <= 0 {
		jobTimeout = time.Minute
	}

	s := &RescoreScheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger{logger: logger}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
		scoring:    scoring,
		jobTimeout: jobTimeout,
		logger:     logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.RunNow); err != nil {
		return nil, fmt.Errorf("%w: parse rescore schedule %q: %v", ErrInvalidInput, schedule, err)
	}
	return s, nil
}

func (s *RescoreScheduler) Start() {
	s.logger.Info("rescore scheduler started", "entries", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for a running pass to finish or ctx to expire.
func (s *RescoreScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("rescore scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("rescore scheduler stop timed out", "error", ctx.Err())
	}
}

func (s *RescoreScheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	result, err := s.scoring.RescoreCompletedFights(ctx)
	switch {
	case errors.Is(err, ErrNoCompletedFights):
		s.logger.Debug("scheduled rescoring skipped", "reason", err.Error())
	case err != nil:
		s.logger.Error("scheduled rescoring failed", "error", err)
	default:
		s.logger.Info("scheduled rescoring finished",
			"completed_fights", result.CompletedFights,
			"picks_scored", result.PicksScored,
			"failed_count", result.FailedCount,
		)
	}
}

type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
