package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fight-picks/internal/domain/catalog"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

type Handler struct {
	catalog            catalog.Catalog
	submissionService  *usecase.SubmissionService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	resultService      *usecase.ResultService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	cat catalog.Catalog,
	submissionService *usecase.SubmissionService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	resultService *usecase.ResultService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalog:            cat,
		submissionService:  submissionService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		resultService:      resultService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type recordFightResultRequest struct {
	Winner string `json:"winner" validate:"required"`
	Method string `json:"method" validate:"required"`
}

type submitPicksResponseDTO struct {
	Message    string `json:"message"`
	SavedCount int    `json:"savedCount"`
}

type pickStatusDTO struct {
	HasSubmitted bool `json:"hasSubmitted"`
}

type rescoreResponseDTO struct {
	Message         string `json:"message"`
	CompletedFights int    `json:"completedFights"`
	PicksScored     int    `json:"picksScored"`
	FailedCount     int    `json:"failedCount"`
}

type eventDTO struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type fightDTO struct {
	ID       string  `json:"id"`
	EventID  string  `json:"eventId"`
	Bout     string  `json:"bout,omitempty"`
	FighterA string  `json:"fighterA"`
	FighterB string  `json:"fighterB"`
	Winner   *string `json:"winner"`
	Method   *string `json:"method"`
}

type methodDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type currentEventDTO struct {
	Event   eventDTO    `json:"event"`
	Fights  []fightDTO  `json:"fights"`
	Methods []methodDTO `json:"methods"`
}

type userPickDTO struct {
	ID            string   `json:"id"`
	EventID       string   `json:"eventId"`
	FightID       string   `json:"fightId"`
	ChosenFighter string   `json:"chosenFighter"`
	PredictMethod string   `json:"predictMethod"`
	Score         int      `json:"score"`
	Fight         fightDTO `json:"fight"`
}

type leaderboardEntryDTO struct {
	Name       string `json:"name"`
	TotalScore int    `json:"totalScore"`
}

type leaderboardResponseDTO struct {
	UserPicks   []userPickDTO         `json:"userPicks"`
	Leaderboard []leaderboardEntryDTO `json:"leaderboard"`
}

type fightResultDTO struct {
	FightID string `json:"fightId"`
	Winner  string `json:"winner"`
	Method  string `json:"method"`
}

func fightToDTO(f event.Fight) fightDTO {
	out := fightDTO{
		ID:       f.ID,
		EventID:  f.EventID,
		Bout:     f.Bout,
		FighterA: f.FighterA,
		FighterB: f.FighterB,
	}
	if f.Winner != nil {
		winner := *f.Winner
		out.Winner = &winner
	}
	if f.Method != nil {
		method := string(*f.Method)
		out.Method = &method
	}
	return out
}

func catalogToDTO(cat catalog.Catalog) currentEventDTO {
	ev := cat.Event()
	fights := cat.Fights()
	methods := cat.Methods()

	out := currentEventDTO{
		Event:   eventDTO{ID: ev.ID, Name: ev.Name, Date: ev.Date},
		Fights:  make([]fightDTO, 0, len(fights)),
		Methods: make([]methodDTO, 0, len(methods)),
	}
	for _, f := range fights {
		out.Fights = append(out.Fights, fightToDTO(f))
	}
	for _, m := range methods {
		out.Methods = append(out.Methods, methodDTO{Value: string(m), Label: m.Label()})
	}
	return out
}

func leaderboardToDTO(board usecase.Leaderboard) leaderboardResponseDTO {
	out := leaderboardResponseDTO{
		UserPicks:   make([]userPickDTO, 0, len(board.UserPicks)),
		Leaderboard: make([]leaderboardEntryDTO, 0, len(board.Entries)),
	}
	for _, d := range board.UserPicks {
		out.UserPicks = append(out.UserPicks, userPickDTO{
			ID:            d.ID,
			EventID:       d.EventID,
			FightID:       d.FightID,
			ChosenFighter: d.ChosenFighter,
			PredictMethod: string(d.PredictMethod),
			Score:         d.Score,
			Fight:         fightToDTO(d.Fight),
		})
	}
	for _, e := range board.Entries {
		out.Leaderboard = append(out.Leaderboard, leaderboardEntryDTO{Name: e.Name, TotalScore: e.TotalScore})
	}
	return out
}

func fightResultToDTO(f event.Fight) fightResultDTO {
	out := fightResultDTO{FightID: f.ID}
	if f.Winner != nil {
		out.Winner = *f.Winner
	}
	if f.Method != nil {
		out.Method = string(*f.Method)
	}
	return out
}
