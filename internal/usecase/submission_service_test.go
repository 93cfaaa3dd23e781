package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/catalog"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
	"github.com/riskibarqy/fight-picks/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fight-picks/internal/platform/id"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

type memoryDeps struct {
	store  *memory.Store
	events *memory.EventRepository
	picks  *memory.PickRepository
	users  *memory.UserRepository
}

func newMemoryDeps() memoryDeps {
	store := memory.NewStore()
	return memoryDeps{
		store:  store,
		events: memory.NewEventRepository(store),
		picks:  memory.NewPickRepository(store),
		users:  memory.NewUserRepository(store),
	}
}

func (d memoryDeps) submission(picks pick.Repository) *usecase.SubmissionService {
	if picks == nil {
		picks = d.picks
	}
	return usecase.NewSubmissionService(
		catalog.Default(),
		d.store,
		d.events,
		picks,
		d.users,
		id.NewUUIDGenerator(),
		logging.NewNop(),
	)
}

var alice = user.Principal{UserID: "user-alice", Name: "Alice", Email: "alice@example.com"}

func storedFightIDs(t *testing.T, picks *memory.PickRepository, userID string) map[string]pick.Detail {
	t.Helper()

	details, err := picks.ListDetailsByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("list details: %v", err)
	}
	out := make(map[string]pick.Detail, len(details))
	for _, d := range details {
		if _, dup := out[d.FightID]; dup {
			t.Fatalf("duplicate pick for fight %s", d.FightID)
		}
		out[d.FightID] = d
	}
	return out
}

func storedUserName(t *testing.T, picks *memory.PickRepository, userID string) (string, bool) {
	t.Helper()

	totals, err := picks.ListUserTotals(context.Background())
	if err != nil {
		t.Fatalf("list user totals: %v", err)
	}
	for _, total := range totals {
		if total.UserID == userID {
			return total.Name, true
		}
	}
	return "", false
}

func TestSubmissionService_Submit_SavesPicks(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)
	ctx := context.Background()

	result, err := svc.Submit(ctx, alice, []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"}}}`))
	if err != nil {
		t.Fatalf("submit picks: %v", err)
	}
	if result.SavedCount != 1 || result.EventID != "ufc-313" {
		t.Fatalf("unexpected result: %+v", result)
	}

	stored := storedFightIDs(t, deps.picks, alice.UserID)
	got, ok := stored["1"]
	if !ok || got.ChosenFighter != "King Green" || got.PredictMethod != event.MethodDecision || got.Score != 0 {
		t.Fatalf("unexpected stored pick: %+v", got)
	}
	if got.Fight.FighterB != "Mauricio Ruffy" || got.Fight.Bout != "Lightweight" {
		t.Fatalf("expected fight detail from catalog, got %+v", got.Fight)
	}

	if name, found := storedUserName(t, deps.picks, alice.UserID); !found || name != "Alice" {
		t.Fatalf("expected user to be upserted, got %q (found=%v)", name, found)
	}
	ev, found, _ := deps.events.GetByID(ctx, "ufc-313")
	if !found || ev.Name != "UFC 313: Pereira vs Ankalaev" {
		t.Fatalf("expected catalog event to be created, got %+v", ev)
	}
	for _, f := range catalog.Default().Fights() {
		if _, found, _ := deps.events.GetFightByID(ctx, f.ID); !found {
			t.Fatalf("expected fight %s to be stored", f.ID)
		}
	}
}

func TestSubmissionService_Submit_IsIdempotent(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)
	body := []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"},"2":{"fighter":"Iasmin Lucindo","method":"Submission"}}}`)

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), alice, body); err != nil {
			t.Fatalf("submit #%d: %v", i+1, err)
		}
	}

	stored := storedFightIDs(t, deps.picks, alice.UserID)
	if len(stored) != 2 {
		t.Fatalf("unexpected pick count after resubmission: got=%d want=2", len(stored))
	}
	if stored["2"].ChosenFighter != "Iasmin Lucindo" || stored["2"].PredictMethod != event.MethodSubmission {
		t.Fatalf("unexpected pick for fight 2: %+v", stored["2"])
	}
}

func TestSubmissionService_Submit_FullReplace(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)
	ctx := context.Background()

	first := []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"},"2":{"fighter":"Amanda Lemos","method":"Decision"},"3":{"fighter":"Jalin Turner","method":"TKO_KO"}}}`)
	second := []byte(`{"picks":{"1":{"fighter":"Mauricio Ruffy","method":"Other"},"3":{"fighter":"Jalin Turner","method":"TKO_KO"}}}`)

	if _, err := svc.Submit(ctx, alice, first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	result, err := svc.Submit(ctx, alice, second)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if result.SavedCount != 2 {
		t.Fatalf("unexpected saved count: got=%d want=2", result.SavedCount)
	}

	stored := storedFightIDs(t, deps.picks, alice.UserID)
	if _, ok := stored["2"]; ok {
		t.Fatalf("expected pick for fight 2 to be removed")
	}
	if stored["1"].ChosenFighter != "Mauricio Ruffy" {
		t.Fatalf("expected fight 1 pick to be replaced, got %+v", stored["1"])
	}
}

func TestSubmissionService_Submit_OtherUsersUntouched(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)
	ctx := context.Background()
	bob := user.Principal{UserID: "user-bob", Email: "bob@example.com"}

	if _, err := svc.Submit(ctx, bob, []byte(`{"picks":{"4":{"fighter":"Rafael Fiziev","method":"Decision"}}}`)); err != nil {
		t.Fatalf("bob submit: %v", err)
	}
	if _, err := svc.Submit(ctx, alice, []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"}}}`)); err != nil {
		t.Fatalf("alice submit: %v", err)
	}

	if len(storedFightIDs(t, deps.picks, bob.UserID)) != 1 {
		t.Fatalf("expected bob's picks to remain")
	}
	if name, _ := storedUserName(t, deps.picks, bob.UserID); name != "bob@example.com" {
		t.Fatalf("expected email fallback for display name, got %q", name)
	}
}

func TestSubmissionService_Submit_ValidationErrorTouchesNothing(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)

	_, err := svc.Submit(context.Background(), alice, []byte(`{"picks":{"99":{"fighter":"King Green","method":"Decision"}}}`))
	var vErr *usecase.ValidationError
	if !errors.As(err, &vErr) || vErr.Reason != usecase.ReasonUnknownFight {
		t.Fatalf("expected unknown fight validation error, got %v", err)
	}
	if _, found, _ := deps.events.GetByID(context.Background(), "ufc-313"); found {
		t.Fatalf("validation failure must not create the event")
	}
}

func TestSubmissionService_Submit_RequiresUser(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)

	_, err := svc.Submit(context.Background(), user.Principal{UserID: "  "}, []byte(`{"picks":{}}`))
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

type failingInsertPicks struct {
	*memory.PickRepository
	err error
}

func (r failingInsertPicks) InsertMany(context.Context, []pick.Pick) error {
	return r.err
}

func TestSubmissionService_Submit_RollsBackOnInsertFailure(t *testing.T) {
	deps := newMemoryDeps()
	ctx := context.Background()
	body := []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"},"2":{"fighter":"Amanda Lemos","method":"Decision"}}}`)

	if _, err := deps.submission(nil).Submit(ctx, alice, body); err != nil {
		t.Fatalf("initial submit: %v", err)
	}

	insertErr := errors.New("connection reset")
	failing := deps.submission(failingInsertPicks{PickRepository: deps.picks, err: insertErr})
	_, err := failing.Submit(ctx, alice, []byte(`{"picks":{"5":{"fighter":"Magomed Ankalaev","method":"Decision"}}}`))
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error, got %v", err)
	}

	stored := storedFightIDs(t, deps.picks, alice.UserID)
	if len(stored) != 2 {
		t.Fatalf("expected prior pick set to survive, got %d picks", len(stored))
	}
}

func TestSubmissionService_Submit_UpdatesEventFoundByName(t *testing.T) {
	deps := newMemoryDeps()
	ctx := context.Background()

	legacy := event.Event{ID: "legacy-313", Name: "UFC 313: Pereira vs Ankalaev", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := deps.events.Create(ctx, legacy); err != nil {
		t.Fatalf("seed legacy event: %v", err)
	}

	result, err := deps.submission(nil).Submit(ctx, alice, []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"}}}`))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.EventID != "legacy-313" {
		t.Fatalf("expected picks to attach to the existing event row, got %s", result.EventID)
	}
	if _, found, _ := deps.events.GetByID(ctx, "ufc-313"); found {
		t.Fatalf("expected no duplicate event row")
	}
	ev, _, _ := deps.events.GetByID(ctx, "legacy-313")
	if !ev.Date.Equal(catalog.Default().Event().Date) {
		t.Fatalf("expected event date to be corrected, got %s", ev.Date)
	}
}

func TestSubmissionService_HasSubmitted(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)
	ctx := context.Background()

	has, err := svc.HasSubmitted(ctx, alice.UserID)
	if err != nil || has {
		t.Fatalf("expected no submission yet, got %v %v", has, err)
	}
	if _, err := svc.Submit(ctx, alice, []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"}}}`)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	has, err = svc.HasSubmitted(ctx, alice.UserID)
	if err != nil || !has {
		t.Fatalf("expected submission, got %v %v", has, err)
	}
	if _, err := svc.HasSubmitted(ctx, ""); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty user, got %v", err)
	}
}

func TestSubmissionService_Submit_ConcurrentResubmissionsSerialize(t *testing.T) {
	deps := newMemoryDeps()
	svc := deps.submission(nil)

	bodies := map[string][]byte{
		"1,2,3": []byte(`{"picks":{"1":{"fighter":"King Green","method":"Decision"},"2":{"fighter":"Amanda Lemos","method":"TKO_KO"},"3":{"fighter":"Ignacio Bahamondes","method":"Submission"}}}`),
		"4,5":   []byte(`{"picks":{"4":{"fighter":"Justin Gaethje","method":"TKO/KO"},"5":{"fighter":"Magomed Ankalaev","method":"Decision"}}}`),
	}
	sets := []string{"1,2,3", "4,5"}

	const submitters = 8
	var wg sync.WaitGroup
	errs := make(chan error, submitters)
	for i := 0; i < submitters; i++ {
		body := bodies[sets[i%len(sets)]]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(context.Background(), alice, body); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent submit: %v", err)
	}

	stored := storedFightIDs(t, deps.picks, alice.UserID)
	fightIDs := make([]string, 0, len(stored))
	for fightID := range stored {
		fightIDs = append(fightIDs, fightID)
	}
	sort.Strings(fightIDs)

	got := strings.Join(fightIDs, ",")
	if _, ok := bodies[got]; !ok {
		t.Fatalf("stored picks %q do not match any single submission", got)
	}
}
