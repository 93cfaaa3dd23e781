package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
)

type RecordResultInput struct {
	FightID string `validate:"required"`
	Winner  string `validate:"required"`
	Method  string `validate:"required"`
}

type ResultService struct {
	eventRepo event.Repository
	validator *validator.Validate
	logger    *logging.Logger
}

func NewResultService(eventRepo event.Repository, logger *logging.Logger) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultService{
		eventRepo: eventRepo,
		validator: validator.New(),
		logger:    logger,
	}
}

// RecordResult stores the official outcome of a fight. Scores are not
// recomputed here.
func (s *ResultService) RecordResult(ctx context.Context, input RecordResultInput) (event.Fight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RecordResult")
	defer span.End()

	input.FightID = strings.TrimSpace(input.FightID)
	input.Winner = strings.TrimSpace(input.Winner)
	input.Method = strings.TrimSpace(input.Method)
	if err := s.validator.StructCtx(ctx, input); err != nil {
		return event.Fight{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	method, ok := event.ParseMethod(input.Method)
	if !ok {
		return event.Fight{}, fmt.Errorf("%w: %s", ErrInvalidInput, ReasonInvalidMethod)
	}

	fight, found, err := s.eventRepo.GetFightByID(ctx, input.FightID)
	if err != nil {
		return event.Fight{}, fmt.Errorf("get fight: %w", err)
	}
	if !found {
		return event.Fight{}, fmt.Errorf("%w: fight=%s", ErrNotFound, input.FightID)
	}
	if !fight.HasFighter(input.Winner) {
		return event.Fight{}, fmt.Errorf("%w: winner %q is not in fight=%s", ErrInvalidInput, input.Winner, fight.ID)
	}

	if err := s.eventRepo.SetFightResult(ctx, fight.ID, input.Winner, method); err != nil {
		return event.Fight{}, fmt.Errorf("set fight result: %w", err)
	}

	fight.Winner = &input.Winner
	fight.Method = &method
	s.logger.InfoContext(ctx, "fight result recorded",
		"fight_id", fight.ID,
		"winner", input.Winner,
		"method", string(method),
	)
	return fight, nil
}
