package memory

import (
	"context"

	"github.com/riskibarqy/fight-picks/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Upsert(ctx context.Context, u user.User) error {
	return r.store.write(ctx, func(st *state) error {
		existing, ok := st.users[u.ID]
		if !ok {
			if u.CreatedAt.IsZero() {
				u.CreatedAt = r.store.now()
			}
			st.users[u.ID] = u
			st.userOrder = append(st.userOrder, u.ID)
			return nil
		}
		existing.Name = u.Name
		existing.Email = u.Email
		st.users[u.ID] = existing
		return nil
	})
}

