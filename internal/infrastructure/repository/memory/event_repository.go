package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	var (
		ev    event.Event
		found bool
	)
	r.store.read(ctx, func(st *state) {
		ev, found = st.events[eventID]
	})
	return ev, found, nil
}

// GetByName returns the earliest stored event with that name.
func (r *EventRepository) GetByName(ctx context.Context, name string) (event.Event, bool, error) {
	var (
		ev    event.Event
		found bool
	)
	r.store.read(ctx, func(st *state) {
		for _, id := range st.eventOrder {
			if st.events[id].Name == name {
				ev, found = st.events[id], true
				return
			}
		}
	})
	return ev, found, nil
}

func (r *EventRepository) Create(ctx context.Context, ev event.Event) (event.Event, error) {
	err := r.store.write(ctx, func(st *state) error {
		if _, exists := st.events[ev.ID]; !exists {
			st.eventOrder = append(st.eventOrder, ev.ID)
		}
		st.events[ev.ID] = ev
		return nil
	})
	return ev, err
}

func (r *EventRepository) UpdateDetails(ctx context.Context, eventID, name string, date time.Time) (event.Event, error) {
	var out event.Event
	err := r.store.write(ctx, func(st *state) error {
		ev, ok := st.events[eventID]
		if !ok {
			return fmt.Errorf("%w: event=%s", usecase.ErrNotFound, eventID)
		}
		ev.Name = name
		ev.Date = date
		st.events[eventID] = ev
		out = ev
		return nil
	})
	return out, err
}

func (r *EventRepository) UpsertFights(ctx context.Context, fights []event.Fight) error {
	return r.store.write(ctx, func(st *state) error {
		for _, f := range fights {
			if _, ok := st.events[f.EventID]; !ok {
				return fmt.Errorf("%w: fight=%s references unknown event=%s", usecase.ErrConflict, f.ID, f.EventID)
			}
		}
		for _, f := range fights {
			existing, ok := st.fights[f.ID]
			if !ok {
				st.fightOrder = append(st.fightOrder, f.ID)
				existing = event.Fight{ID: f.ID}
			}
			existing.EventID = f.EventID
			existing.Bout = f.Bout
			existing.FighterA = f.FighterA
			existing.FighterB = f.FighterB
			st.fights[f.ID] = existing
		}
		return nil
	})
}

func (r *EventRepository) GetFightByID(ctx context.Context, fightID string) (event.Fight, bool, error) {
	var (
		f     event.Fight
		found bool
	)
	r.store.read(ctx, func(st *state) {
		f, found = st.fights[fightID]
		f = cloneFight(f)
	})
	return f, found, nil
}

func (r *EventRepository) ListCompletedFights(ctx context.Context) ([]event.Fight, error) {
	var out []event.Fight
	r.store.read(ctx, func(st *state) {
		for _, id := range st.fightOrder {
			if f := st.fights[id]; f.IsCompleted() {
				out = append(out, cloneFight(f))
			}
		}
	})
	return out, nil
}

func (r *EventRepository) SetFightResult(ctx context.Context, fightID, winner string, method event.Method) error {
	return r.store.write(ctx, func(st *state) error {
		f, ok := st.fights[fightID]
		if !ok {
			return fmt.Errorf("%w: fight=%s", usecase.ErrNotFound, fightID)
		}
		f.Winner = &winner
		f.Method = &method
		st.fights[fightID] = f
		return nil
	})
}
