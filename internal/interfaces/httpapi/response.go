package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fight-picks/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	msgUnauthorized        = "unauthorized"
	msgMethodNotAllowed    = "method not allowed"
	msgConflict            = "submission conflicts with existing data"
	msgDependencyDown      = "service temporarily unavailable"
	msgInternalServerError = "internal server error"
)

type errorResponse struct {
	Error   string `json:"error"`
	FightID string `json:"fightId,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
	FightID    string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + msgInternalServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{
		Error:   mapped.Message,
		FightID: mapped.FightID,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: msgInternalServerError})
}

func writeMethodNotAllowed(ctx context.Context, w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(ctx, w, fmt.Errorf("%w: allowed %s", usecase.ErrMethodNotAllowed, allow))
}

// mapError turns a usecase error into a status and a public message. Storage
// and unexpected failures never leak their detail.
func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: validationErr.Reason, FightID: validationErr.FightID}
	case errors.Is(err, usecase.ErrNoCompletedFights):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: usecase.ErrNoCompletedFights.Error()}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgConflict}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Message: msgUnauthorized}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, usecase.ErrMethodNotAllowed):
		return mappedError{HTTPStatus: http.StatusMethodNotAllowed, Message: msgMethodNotAllowed}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Message: msgDependencyDown}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: msgInternalServerError}
	}
}

// isServerFailure reports whether err maps to a 5xx and should be logged as a system failure.
func isServerFailure(ctx context.Context, err error) bool {
	return mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError
}
