package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
)

// Store is the shared state behind the memory repositories. A transaction
// holds the write lock for its whole duration and restores a snapshot when
// it fails, so transactions are serialized.
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

type state struct {
	events     map[string]event.Event
	eventOrder []string
	fights     map[string]event.Fight
	fightOrder []string
	users      map[string]user.User
	userOrder  []string
	picks      map[string]pick.Pick
	pickOrder  []string
}

type txKey struct{}

func NewStore() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

func newState() *state {
	return &state{
		events: make(map[string]event.Event),
		fights: make(map[string]event.Fight),
		users:  make(map[string]user.User),
		picks:  make(map[string]pick.Pick),
	}
}

// WithinTransaction implements usecase.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

func (s *Store) read(ctx context.Context, fn func(st *state)) {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.state)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.state)
}

func (st *state) clone() *state {
	out := &state{
		events:     make(map[string]event.Event, len(st.events)),
		eventOrder: append([]string(nil), st.eventOrder...),
		fights:     make(map[string]event.Fight, len(st.fights)),
		fightOrder: append([]string(nil), st.fightOrder...),
		users:      make(map[string]user.User, len(st.users)),
		userOrder:  append([]string(nil), st.userOrder...),
		picks:      make(map[string]pick.Pick, len(st.picks)),
		pickOrder:  append([]string(nil), st.pickOrder...),
	}
	for k, v := range st.events {
		out.events[k] = v
	}
	for k, v := range st.fights {
		out.fights[k] = cloneFight(v)
	}
	for k, v := range st.users {
		out.users[k] = v
	}
	for k, v := range st.picks {
		out.picks[k] = v
	}
	return out
}

func cloneFight(f event.Fight) event.Fight {
	copied := f
	if f.Winner != nil {
		winner := *f.Winner
		copied.Winner = &winner
	}
	if f.Method != nil {
		method := *f.Method
		copied.Method = &method
	}
	return copied
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
