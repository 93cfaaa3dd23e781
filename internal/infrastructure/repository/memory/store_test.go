package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

func seedStore(t *testing.T) (*Store, *EventRepository, *PickRepository, *UserRepository) {
	t.Helper()

	store := NewStore()
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	events := NewEventRepository(store)
	picks := NewPickRepository(store)
	users := NewUserRepository(store)
	ctx := context.Background()

	if _, err := events.Create(ctx, event.Event{ID: "ufc-313", Name: "UFC 313"}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if err := events.UpsertFights(ctx, []event.Fight{
		{ID: "1", EventID: "ufc-313", FighterA: "A", FighterB: "B"},
		{ID: "2", EventID: "ufc-313", FighterA: "C", FighterB: "D"},
	}); err != nil {
		t.Fatalf("upsert fights: %v", err)
	}
	for _, id := range []string{"u1", "u2"} {
		if err := users.Upsert(ctx, user.User{ID: id, Name: "name-" + id}); err != nil {
			t.Fatalf("upsert user: %v", err)
		}
	}
	return store, events, picks, users
}

func TestStore_WithinTransactionRollsBackOnError(t *testing.T) {
	store, _, picks, _ := seedStore(t)
	ctx := context.Background()

	if err := picks.InsertMany(ctx, []pick.Pick{{ID: "p1", UserID: "u1", EventID: "ufc-313", FightID: "1", ChosenFighter: "A"}}); err != nil {
		t.Fatalf("insert pick: %v", err)
	}

	boom := errors.New("boom")
	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := picks.DeleteByUserEvent(ctx, "u1", "ufc-313"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	exists, _ := picks.ExistsByUser(ctx, "u1")
	if !exists {
		t.Fatalf("expected prior picks to survive rolled back transaction")
	}
}

func TestPickRepository_InsertManyEnforcesKeys(t *testing.T) {
	_, _, picks, _ := seedStore(t)
	ctx := context.Background()

	base := pick.Pick{ID: "p1", UserID: "u1", EventID: "ufc-313", FightID: "1", ChosenFighter: "A"}
	if err := picks.InsertMany(ctx, []pick.Pick{base}); err != nil {
		t.Fatalf("insert pick: %v", err)
	}

	dup := base
	dup.ID = "p2"
	if err := picks.InsertMany(ctx, []pick.Pick{dup}); !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected conflict for duplicate user/fight, got %v", err)
	}

	unknown := base
	unknown.ID = "p3"
	unknown.FightID = "99"
	if err := picks.InsertMany(ctx, []pick.Pick{unknown}); !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected conflict for unknown fight, got %v", err)
	}
}

func TestPickRepository_TotalsAndDetails(t *testing.T) {
	_, events, picks, _ := seedStore(t)
	ctx := context.Background()

	if err := picks.InsertMany(ctx, []pick.Pick{
		{ID: "p1", UserID: "u2", EventID: "ufc-313", FightID: "2", ChosenFighter: "C", PredictMethod: event.MethodDecision},
		{ID: "p2", UserID: "u2", EventID: "ufc-313", FightID: "1", ChosenFighter: "A", PredictMethod: event.MethodOther},
	}); err != nil {
		t.Fatalf("insert picks: %v", err)
	}
	if err := picks.UpdateScore(ctx, "p1", 3); err != nil {
		t.Fatalf("update score: %v", err)
	}
	if err := picks.UpdateScore(ctx, "p2", 1); err != nil {
		t.Fatalf("update score: %v", err)
	}
	if err := picks.UpdateScore(ctx, "missing", 1); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected not found for missing pick, got %v", err)
	}

	totals, err := picks.ListUserTotals(ctx)
	if err != nil {
		t.Fatalf("list totals: %v", err)
	}
	if len(totals) != 2 || totals[0].UserID != "u1" || totals[0].TotalScore != 0 || totals[1].TotalScore != 4 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	details, err := picks.ListDetailsByUser(ctx, "u2")
	if err != nil {
		t.Fatalf("list details: %v", err)
	}
	if len(details) != 2 || details[0].FightID != "2" || details[0].Fight.FighterA != "C" {
		t.Fatalf("expected storage order with fight detail, got %+v", details)
	}

	if err := events.SetFightResult(ctx, "1", "A", event.MethodOther); err != nil {
		t.Fatalf("set result: %v", err)
	}
	completed, _ := events.ListCompletedFights(ctx)
	if len(completed) != 1 || completed[0].ID != "1" {
		t.Fatalf("unexpected completed fights: %+v", completed)
	}
}

func TestEventRepository_UpsertFightsKeepsResult(t *testing.T) {
	_, events, _, _ := seedStore(t)
	ctx := context.Background()

	if err := events.SetFightResult(ctx, "1", "A", event.MethodDecision); err != nil {
		t.Fatalf("set result: %v", err)
	}
	if err := events.UpsertFights(ctx, []event.Fight{{ID: "1", EventID: "ufc-313", FighterA: "A", FighterB: "B2"}}); err != nil {
		t.Fatalf("upsert fights: %v", err)
	}

	f, found, _ := events.GetFightByID(ctx, "1")
	if !found || f.FighterB != "B2" || !f.IsCompleted() || *f.Winner != "A" {
		t.Fatalf("unexpected fight after upsert: %+v", f)
	}

	if err := events.UpsertFights(ctx, []event.Fight{{ID: "9", EventID: "nope"}}); !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected conflict for unknown event, got %v", err)
	}
}

func TestUserRepository_UpsertKeepsCreatedAt(t *testing.T) {
	_, _, picks, users := seedStore(t)
	ctx := context.Background()

	if err := users.Upsert(ctx, user.User{ID: "u1", Name: "renamed", Email: "u1@example.com"}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	totals, err := picks.ListUserTotals(ctx)
	if err != nil {
		t.Fatalf("list user totals: %v", err)
	}
	if len(totals) != 2 || totals[0].UserID != "u1" || totals[0].Name != "renamed" {
		t.Fatalf("expected u1 to keep its creation position with the new name, got %+v", totals)
	}
}
