package pick

import "context"

// Repository describes pick persistence needs from use cases.
type Repository interface {
	// LockUserEvent serializes replacements of one user's picks for an event within the current transaction.
	LockUserEvent(ctx context.Context, userID, eventID string) error
	DeleteByUserEvent(ctx context.Context, userID, eventID string) (int, error)
	InsertMany(ctx context.Context, picks []Pick) error

	ListByFight(ctx context.Context, fightID string) ([]Pick, error)
	UpdateScore(ctx context.Context, pickID string, score int) error

	ExistsByUser(ctx context.Context, userID string) (bool, error)
	ListDetailsByUser(ctx context.Context, userID string) ([]Detail, error)
	// ListUserTotals returns every user, including those without picks, ordered by creation.
	ListUserTotals(ctx context.Context) ([]UserTotal, error)
}
