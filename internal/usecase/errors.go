package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflicting state")
	ErrNoCompletedFights     = errors.New("no completed fights found")
	ErrMethodNotAllowed      = errors.New("method not allowed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Reasons reported by ValidatePicks.
const (
	ReasonMalformedRequest = "malformed request"
	ReasonUnsupportedEvent = "unsupported event"
	ReasonNoPicks          = "no picks provided"
	ReasonUnknownFight     = "unknown fight id"
	ReasonInvalidFighter   = "invalid fighter selection"
	ReasonInvalidMethod    = "invalid method"
)

// ValidationError is a caller-fixable rejection of a pick submission.
type ValidationError struct {
	Reason  string
	FightID string
}

func (e *ValidationError) Error() string {
	if e.FightID == "" {
		return e.Reason
	}
	return e.Reason + ": fight=" + e.FightID
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
