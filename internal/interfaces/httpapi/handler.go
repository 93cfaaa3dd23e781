package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetCurrentEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentEvent")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, catalogToDTO(h.catalog))
}

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := callerFrom(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		writeError(ctx, w, &usecase.ValidationError{Reason: usecase.ReasonMalformedRequest})
		return
	}

	result, err := h.submissionService.Submit(ctx, principal, body)
	if err != nil {
		if isServerFailure(ctx, err) {
			h.logger.ErrorContext(ctx, "submit picks failed", "user_id", principal.UserID, "error", err)
		} else {
			h.logger.WarnContext(ctx, "submit picks rejected", "user_id", principal.UserID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, submitPicksResponseDTO{
		Message:    "Picks submitted successfully.",
		SavedCount: result.SavedCount,
	})
}

func (h *Handler) GetMyPickStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPickStatus")
	defer span.End()

	principal, ok := callerFrom(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	submitted, err := h.submissionService.HasSubmitted(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "check pick status failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, pickStatusDTO{HasSubmitted: submitted})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	principal, ok := callerFrom(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	board, err := h.leaderboardService.Get(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) RescoreCompletedFights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescoreCompletedFights")
	defer span.End()

	result, err := h.scoringService.RescoreCompletedFights(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrNoCompletedFights) {
			h.logger.InfoContext(ctx, "rescore skipped", "reason", err.Error())
		} else {
			h.logger.ErrorContext(ctx, "rescore completed fights failed", "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, rescoreResponseDTO{
		Message:         "Scores updated successfully!",
		CompletedFights: result.CompletedFights,
		PicksScored:     result.PicksScored,
		FailedCount:     result.FailedCount,
	})
}

func (h *Handler) RecordFightResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordFightResult")
	defer span.End()

	fightID := strings.TrimSpace(r.PathValue("fightID"))

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req recordFightResultRequest
	if err := sonic.Unmarshal(raw, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: request body must be a JSON object", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fight, err := h.resultService.RecordResult(ctx, usecase.RecordResultInput{
		FightID: fightID,
		Winner:  req.Winner,
		Method:  req.Method,
	})
	if err != nil {
		if isServerFailure(ctx, err) {
			h.logger.ErrorContext(ctx, "record fight result failed", "fight_id", fightID, "error", err)
		} else {
			h.logger.WarnContext(ctx, "record fight result rejected", "fight_id", fightID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, fightResultToDTO(fight))
}
