package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

type PickRepository struct {
	store *Store
}

func NewPickRepository(store *Store) *PickRepository {
	return &PickRepository{store: store}
}

// LockUserEvent is a no-op: memory transactions are already serialized.
func (r *PickRepository) LockUserEvent(_ context.Context, _, _ string) error {
	return nil
}

func (r *PickRepository) DeleteByUserEvent(ctx context.Context, userID, eventID string) (int, error) {
	deleted := 0
	err := r.store.write(ctx, func(st *state) error {
		kept := st.pickOrder[:0]
		for _, id := range st.pickOrder {
			p := st.picks[id]
			if p.UserID == userID && p.EventID == eventID {
				delete(st.picks, id)
				deleted++
				continue
			}
			kept = append(kept, id)
		}
		st.pickOrder = kept
		return nil
	})
	return deleted, err
}

// InsertMany enforces the same keys the relational schema does.
func (r *PickRepository) InsertMany(ctx context.Context, picks []pick.Pick) error {
	return r.store.write(ctx, func(st *state) error {
		taken := make(map[string]struct{}, len(st.picks)+len(picks))
		for _, p := range st.picks {
			taken[pickKey(p)] = struct{}{}
		}

		for _, p := range picks {
			if _, ok := st.picks[p.ID]; ok {
				return fmt.Errorf("%w: duplicate pick id=%s", usecase.ErrConflict, p.ID)
			}
			if _, ok := st.users[p.UserID]; !ok {
				return fmt.Errorf("%w: pick references unknown user=%s", usecase.ErrConflict, p.UserID)
			}
			if _, ok := st.events[p.EventID]; !ok {
				return fmt.Errorf("%w: pick references unknown event=%s", usecase.ErrConflict, p.EventID)
			}
			if _, ok := st.fights[p.FightID]; !ok {
				return fmt.Errorf("%w: pick references unknown fight=%s", usecase.ErrConflict, p.FightID)
			}
			key := pickKey(p)
			if _, ok := taken[key]; ok {
				return fmt.Errorf("%w: pick already exists for user=%s fight=%s", usecase.ErrConflict, p.UserID, p.FightID)
			}
			taken[key] = struct{}{}
		}

		for _, p := range picks {
			if p.CreatedAt.IsZero() {
				p.CreatedAt = r.store.now()
			}
			st.picks[p.ID] = p
			st.pickOrder = append(st.pickOrder, p.ID)
		}
		return nil
	})
}

func (r *PickRepository) ListByFight(ctx context.Context, fightID string) ([]pick.Pick, error) {
	var out []pick.Pick
	r.store.read(ctx, func(st *state) {
		for _, id := range st.pickOrder {
			if p := st.picks[id]; p.FightID == fightID {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (r *PickRepository) UpdateScore(ctx context.Context, pickID string, score int) error {
	return r.store.write(ctx, func(st *state) error {
		p, ok := st.picks[pickID]
		if !ok {
			return fmt.Errorf("%w: pick=%s", usecase.ErrNotFound, pickID)
		}
		p.Score = score
		st.picks[pickID] = p
		return nil
	})
}

func (r *PickRepository) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	exists := false
	r.store.read(ctx, func(st *state) {
		for _, p := range st.picks {
			if p.UserID == userID {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *PickRepository) ListDetailsByUser(ctx context.Context, userID string) ([]pick.Detail, error) {
	var out []pick.Detail
	r.store.read(ctx, func(st *state) {
		for _, id := range st.pickOrder {
			p := st.picks[id]
			if p.UserID != userID {
				continue
			}
			out = append(out, pick.Detail{Pick: p, Fight: cloneFight(st.fights[p.FightID])})
		}
	})
	return out, nil
}

func (r *PickRepository) ListUserTotals(ctx context.Context) ([]pick.UserTotal, error) {
	var out []pick.UserTotal
	r.store.read(ctx, func(st *state) {
		sums := make(map[string]int, len(st.users))
		for _, p := range st.picks {
			sums[p.UserID] += p.Score
		}

		ids := append([]string(nil), st.userOrder...)
		sort.SliceStable(ids, func(i, j int) bool {
			a, b := st.users[ids[i]], st.users[ids[j]]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})

		out = make([]pick.UserTotal, 0, len(ids))
		for _, id := range ids {
			u := st.users[id]
			out = append(out, pick.UserTotal{UserID: u.ID, Name: u.Name, TotalScore: sums[u.ID]})
		}
	})
	return out, nil
}

func pickKey(p pick.Pick) string {
	return p.UserID + "::" + p.EventID + "::" + p.FightID
}
