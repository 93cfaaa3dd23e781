package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/fight-picks/internal/domain/catalog"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
	"github.com/riskibarqy/fight-picks/internal/platform/id"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
)

type SubmitResult struct {
	EventID    string
	SavedCount int
}

type SubmissionService struct {
	catalog   catalog.Catalog
	tx        Transactor
	eventRepo event.Repository
	pickRepo  pick.Repository
	userRepo  user.Repository
	idGen     id.Generator
	logger    *logging.Logger
}

func NewSubmissionService(
	cat catalog.Catalog,
	tx Transactor,
	eventRepo event.Repository,
	pickRepo pick.Repository,
	userRepo user.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{
		catalog:   cat,
		tx:        tx,
		eventRepo: eventRepo,
		pickRepo:  pickRepo,
		userRepo:  userRepo,
		idGen:     idGen,
		logger:    logger,
	}
}

// Submit validates body and replaces the principal's picks for the catalog event.
func (s *SubmissionService) Submit(ctx context.Context, principal user.Principal, body []byte) (SubmitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit")
	defer span.End()

	principal.UserID = strings.TrimSpace(principal.UserID)
	if principal.UserID == "" {
		return SubmitResult{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	selections, err := ValidatePicks(body, s.catalog)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.logger.DebugContext(ctx, "pick submission rejected",
				"user_id", principal.UserID,
				"reason", vErr.Reason,
				"fight_id", vErr.FightID,
			)
		}
		return SubmitResult{}, err
	}

	var result SubmitResult
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Upsert(ctx, user.User{
			ID:    principal.UserID,
			Name:  principal.DisplayName(),
			Email: principal.Email,
		}); err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}

		ev, err := s.ensureEvent(ctx)
		if err != nil {
			return err
		}
		if err := s.ensureFights(ctx, ev.ID); err != nil {
			return err
		}

		saved, err := s.replacePicks(ctx, principal.UserID, ev.ID, selections)
		if err != nil {
			return err
		}

		result = SubmitResult{EventID: ev.ID, SavedCount: saved}
		return nil
	})
	if err != nil {
		return SubmitResult{}, err
	}

	s.logger.InfoContext(ctx, "picks submitted",
		"user_id", principal.UserID,
		"event_id", result.EventID,
		"saved_count", result.SavedCount,
	)
	return result, nil
}

// HasSubmitted reports whether the user has any stored pick.
func (s *SubmissionService) HasSubmitted(ctx context.Context, userID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.HasSubmitted")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	exists, err := s.pickRepo.ExistsByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check user picks: %w", err)
	}
	return exists, nil
}

// ensureEvent matches the stored event to the catalog by id, then by name, before creating it.
// A row found by name keeps its own id.
func (s *SubmissionService) ensureEvent(ctx context.Context) (event.Event, error) {
	want := s.catalog.Event()

	existing, found, err := s.eventRepo.GetByID(ctx, want.ID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event by id: %w", err)
	}
	if !found {
		existing, found, err = s.eventRepo.GetByName(ctx, want.Name)
		if err != nil {
			return event.Event{}, fmt.Errorf("get event by name: %w", err)
		}
	}
	if !found {
		created, err := s.eventRepo.Create(ctx, want)
		if err != nil {
			return event.Event{}, fmt.Errorf("create event: %w", err)
		}
		return created, nil
	}

	if existing.Name == want.Name && existing.Date.Equal(want.Date) {
		return existing, nil
	}
	updated, err := s.eventRepo.UpdateDetails(ctx, existing.ID, want.Name, want.Date)
	if err != nil {
		return event.Event{}, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *SubmissionService) ensureFights(ctx context.Context, eventID string) error {
	fights := s.catalog.Fights()
	for i := range fights {
		fights[i].EventID = eventID
	}
	if err := s.eventRepo.UpsertFights(ctx, fights); err != nil {
		return fmt.Errorf("upsert fights: %w", err)
	}
	return nil
}

func (s *SubmissionService) replacePicks(ctx context.Context, userID, eventID string, selections []pick.Selection) (int, error) {
	if err := s.pickRepo.LockUserEvent(ctx, userID, eventID); err != nil {
		return 0, fmt.Errorf("lock user picks: %w", err)
	}
	if _, err := s.pickRepo.DeleteByUserEvent(ctx, userID, eventID); err != nil {
		return 0, fmt.Errorf("delete previous picks: %w", err)
	}

	picks := make([]pick.Pick, 0, len(selections))
	for _, sel := range selections {
		pickID, err := s.idGen.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate pick id: %w", err)
		}
		picks = append(picks, pick.Pick{
			ID:            pickID,
			UserID:        userID,
			EventID:       eventID,
			FightID:       sel.FightID,
			ChosenFighter: sel.ChosenFighter,
			PredictMethod: sel.Method,
			Score:         0,
		})
	}
	if err := s.pickRepo.InsertMany(ctx, picks); err != nil {
		return 0, fmt.Errorf("insert picks: %w", err)
	}
	return len(picks), nil
}
