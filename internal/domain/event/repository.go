package event

import (
	"context"
	"time"
)

// Repository describes event and fight persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	GetByName(ctx context.Context, name string) (Event, bool, error)
	// Create inserts the event, updating name/date if the id already exists.
	Create(ctx context.Context, ev Event) (Event, error)
	UpdateDetails(ctx context.Context, eventID, name string, date time.Time) (Event, error)

	// UpsertFights reconciles identity and fighter fields; result fields are left as stored.
	UpsertFights(ctx context.Context, fights []Fight) error
	GetFightByID(ctx context.Context, fightID string) (Fight, bool, error)
	ListCompletedFights(ctx context.Context) ([]Fight, error)
	SetFightResult(ctx context.Context, fightID, winner string, method Method) error
}
