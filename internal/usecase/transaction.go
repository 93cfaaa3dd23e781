package usecase

import "context"

// Transactor runs fn in one store transaction. Repositories called with the
// ctx passed to fn join that transaction; a returned error rolls it back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
