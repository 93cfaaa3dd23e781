package user

import "context"

type Repository interface {
	// Upsert creates the user or refreshes name/email, keeping the original creation time.
	Upsert(ctx context.Context, u User) error
}
