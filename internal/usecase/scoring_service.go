package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
	"github.com/riskibarqy/fight-picks/internal/platform/resilience"
)

const (
	defaultRescoreWorkers = 4
	defaultPassTimeout    = 2 * time.Minute
	rescoreFlightKey      = "rescore-completed-fights"
)

type RescoreResult struct {
	CompletedFights int
	PicksScored     int
	FailedCount     int
}

type ScoringService struct {
	eventRepo event.Repository
	pickRepo  pick.Repository
	workers     int
	passTimeout time.Duration
	logger      *logging.Logger

	flight resilience.SingleFlight[RescoreResult]
}

func NewScoringService(eventRepo event.Repository, pickRepo pick.Repository, workers int, passTimeout time.Duration, logger *logging.Logger) *ScoringService {
	if workers <= 0 {
		workers = defaultRescoreWorkers
	}
	if passTimeout <= 0 {
		passTimeout = defaultPassTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		eventRepo: eventRepo,
		pickRepo:  pickRepo,
		workers:     workers,
		passTimeout: passTimeout,
		logger:      logger,
	}
}

// RescoreCompletedFights overwrites the score of every pick on a fight with a
// recorded result. Calls that arrive while a pass is running share its result.
// The pass is detached from the starting caller's cancellation and bounded by
// passTimeout instead, so joined callers are not cut short by it.
func (s *ScoringService) RescoreCompletedFights(ctx context.Context) (RescoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RescoreCompletedFights")
	defer span.End()

	result, err, shared := s.flight.Do(rescoreFlightKey, func() (RescoreResult, error) {
		passCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.passTimeout)
		defer cancel()
		return s.rescore(passCtx)
	})
	if shared {
		s.logger.DebugContext(ctx, "joined in-flight rescoring pass")
	}
	return result, err
}

func (s *ScoringService) rescore(ctx context.Context) (RescoreResult, error) {
	fights, err := s.eventRepo.ListCompletedFights(ctx)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("list completed fights: %w", err)
	}
	fights = completedOnly(fights)
	if len(fights) == 0 {
		return RescoreResult{}, ErrNoCompletedFights
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers     sync.WaitGroup
		scoredCount atomic.Int32
		failedCount atomic.Int32
	)
	for _, fight := range fights {
		picks, err := s.pickRepo.ListByFight(ctx, fight.ID)
		if err != nil {
			workers.Wait()
			return RescoreResult{}, fmt.Errorf("list picks for fight=%s: %w", fight.ID, err)
		}

		winner, method := *fight.Winner, *fight.Method
		for _, p := range picks {
			p := p
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				score := pick.Score(p.ChosenFighter, p.PredictMethod, winner, method)
				if err := s.pickRepo.UpdateScore(ctx, p.ID, score); err != nil {
					failedCount.Add(1)
					s.logger.WarnContext(ctx, "update pick score failed",
						"pick_id", p.ID,
						"fight_id", p.FightID,
						"error", err,
					)
					return
				}
				scoredCount.Add(1)
			}); err != nil {
				workers.Done()
				workers.Wait()
				return RescoreResult{}, fmt.Errorf("submit score update to worker pool: %w", err)
			}
		}
	}
	workers.Wait()

	result := RescoreResult{
		CompletedFights: len(fights),
		PicksScored:     int(scoredCount.Load()),
		FailedCount:     int(failedCount.Load()),
	}
	s.logger.InfoContext(ctx, "rescoring pass finished",
		"completed_fights", result.CompletedFights,
		"picks_scored", result.PicksScored,
		"failed_count", result.FailedCount,
	)
	return result, nil
}

func completedOnly(fights []event.Fight) []event.Fight {
	out := fights[:0:0]
	for _, f := range fights {
		if f.IsCompleted() {
			out = append(out, f)
		}
	}
	return out
}
