package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
	"github.com/riskibarqy/fight-picks/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

func seedScoringPicks(t *testing.T, deps memoryDeps) {
	t.Helper()

	ctx := context.Background()
	svc := deps.submission(nil)
	submissions := map[string]string{
		"user-a": `{"picks":{"1":{"fighter":"King Green","method":"Decision"},"2":{"fighter":"Amanda Lemos","method":"Decision"}}}`,
		"user-b": `{"picks":{"1":{"fighter":"King Green","method":"Submission"}}}`,
		"user-c": `{"picks":{"1":{"fighter":"Mauricio Ruffy","method":"Decision"}}}`,
	}
	for userID, body := range submissions {
		if _, err := svc.Submit(ctx, user.Principal{UserID: userID, Name: userID}, []byte(body)); err != nil {
			t.Fatalf("submit for %s: %v", userID, err)
		}
	}
	if err := deps.events.SetFightResult(ctx, "1", "King Green", event.MethodDecision); err != nil {
		t.Fatalf("set fight result: %v", err)
	}
}

func scoresByUser(t *testing.T, picks pick.Repository, fightID string) map[string]int {
	t.Helper()

	items, err := picks.ListByFight(context.Background(), fightID)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	out := make(map[string]int, len(items))
	for _, p := range items {
		out[p.UserID] = p.Score
	}
	return out
}

func TestScoringService_RescoreCompletedFights(t *testing.T) {
	deps := newMemoryDeps()
	seedScoringPicks(t, deps)
	svc := usecase.NewScoringService(deps.events, deps.picks, 2, 0, logging.NewNop())

	result, err := svc.RescoreCompletedFights(context.Background())
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	if result.CompletedFights != 1 || result.PicksScored != 3 || result.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	scores := scoresByUser(t, deps.picks, "1")
	want := map[string]int{"user-a": 3, "user-b": 1, "user-c": 0}
	for userID, w := range want {
		if scores[userID] != w {
			t.Fatalf("unexpected score for %s: got=%d want=%d", userID, scores[userID], w)
		}
	}
	if got := scoresByUser(t, deps.picks, "2")["user-a"]; got != 0 {
		t.Fatalf("pick on unfinished fight must stay 0, got %d", got)
	}
}

func TestScoringService_RescoreIsIdempotent(t *testing.T) {
	deps := newMemoryDeps()
	seedScoringPicks(t, deps)
	svc := usecase.NewScoringService(deps.events, deps.picks, 0, 0, nil)

	if _, err := svc.RescoreCompletedFights(context.Background()); err != nil {
		t.Fatalf("first rescore: %v", err)
	}
	first := scoresByUser(t, deps.picks, "1")
	if _, err := svc.RescoreCompletedFights(context.Background()); err != nil {
		t.Fatalf("second rescore: %v", err)
	}
	second := scoresByUser(t, deps.picks, "1")

	for userID, score := range first {
		if second[userID] != score {
			t.Fatalf("score for %s changed between passes: %d -> %d", userID, score, second[userID])
		}
	}
}

func TestScoringService_NoCompletedFights(t *testing.T) {
	deps := newMemoryDeps()
	svc := usecase.NewScoringService(deps.events, deps.picks, 2, 0, logging.NewNop())

	_, err := svc.RescoreCompletedFights(context.Background())
	if !errors.Is(err, usecase.ErrNoCompletedFights) {
		t.Fatalf("expected ErrNoCompletedFights, got %v", err)
	}
}

type flakyScorePicks struct {
	*memory.PickRepository

	mu      sync.Mutex
	failFor string
}

func (r *flakyScorePicks) UpdateScore(ctx context.Context, pickID string, score int) error {
	r.mu.Lock()
	failFor := r.failFor
	r.mu.Unlock()
	if pickID == failFor {
		return errors.New("row locked")
	}
	return r.PickRepository.UpdateScore(ctx, pickID, score)
}

func TestScoringService_CountsFailuresWithoutAborting(t *testing.T) {
	deps := newMemoryDeps()
	seedScoringPicks(t, deps)

	items, err := deps.picks.ListByFight(context.Background(), "1")
	if err != nil || len(items) != 3 {
		t.Fatalf("expected 3 picks on fight 1, got %d %v", len(items), err)
	}
	var failing pick.Pick
	for _, p := range items {
		if p.UserID == "user-a" {
			failing = p
		}
	}

	picks := &flakyScorePicks{PickRepository: deps.picks, failFor: failing.ID}
	svc := usecase.NewScoringService(deps.events, picks, 3, 0, logging.NewNop())

	result, err := svc.RescoreCompletedFights(context.Background())
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	if result.PicksScored != 2 || result.FailedCount != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	scores := scoresByUser(t, deps.picks, "1")
	if scores["user-a"] != 0 || scores["user-b"] != 1 {
		t.Fatalf("unexpected scores after partial failure: %+v", scores)
	}
}

type gatedCompletedFights struct {
	*memory.EventRepository

	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (r *gatedCompletedFights) ListCompletedFights(ctx context.Context) ([]event.Fight, error) {
	if r.calls.Add(1) == 1 {
		close(r.entered)
		<-r.release
	}
	return r.EventRepository.ListCompletedFights(ctx)
}

func TestScoringService_ConcurrentCallsShareOnePass(t *testing.T) {
	deps := newMemoryDeps()
	seedScoringPicks(t, deps)

	events := &gatedCompletedFights{
		EventRepository: deps.events,
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	svc := usecase.NewScoringService(events, deps.picks, 2, time.Minute, logging.NewNop())

	var (
		wg      sync.WaitGroup
		results [2]usecase.RescoreResult
		errs    [2]error
	)
	run := func(i int) {
		defer wg.Done()
		results[i], errs[i] = svc.RescoreCompletedFights(context.Background())
	}

	wg.Add(2)
	go run(0)
	<-events.entered
	go run(1)
	// Give the second caller time to park on the running pass.
	time.Sleep(50 * time.Millisecond)
	close(events.release)
	wg.Wait()

	for i := range errs {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i].PicksScored != 3 || results[i].CompletedFights != 1 {
			t.Fatalf("caller %d got unexpected result: %+v", i, results[i])
		}
	}
	if got := events.calls.Load(); got != 1 {
		t.Fatalf("expected one rescoring pass, got %d", got)
	}
}

type ctxAwarePicks struct {
	*memory.PickRepository
}

func (r ctxAwarePicks) UpdateScore(ctx context.Context, pickID string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.PickRepository.UpdateScore(ctx, pickID, score)
}

func TestScoringService_PassOutlivesCallerCancellation(t *testing.T) {
	deps := newMemoryDeps()
	seedScoringPicks(t, deps)
	svc := usecase.NewScoringService(deps.events, ctxAwarePicks{PickRepository: deps.picks}, 2, time.Minute, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.RescoreCompletedFights(ctx)
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	if result.PicksScored != 3 || result.FailedCount != 0 {
		t.Fatalf("expected the pass to ignore caller cancellation, got %+v", result)
	}
	if got := scoresByUser(t, deps.picks, "1")["user-a"]; got != 3 {
		t.Fatalf("unexpected score for user-a: %d", got)
	}
}

type brokenListingPicks struct {
	*memory.PickRepository

	failFight string
	finished  atomic.Int32
}

func (r *brokenListingPicks) ListByFight(ctx context.Context, fightID string) ([]pick.Pick, error) {
	if fightID == r.failFight {
		return nil, errors.New("connection reset")
	}
	return r.PickRepository.ListByFight(ctx, fightID)
}

func (r *brokenListingPicks) UpdateScore(ctx context.Context, pickID string, score int) error {
	defer r.finished.Add(1)
	time.Sleep(20 * time.Millisecond)
	return r.PickRepository.UpdateScore(ctx, pickID, score)
}

func TestScoringService_ListFailureWaitsForSubmittedUpdates(t *testing.T) {
	deps := newMemoryDeps()
	seedScoringPicks(t, deps)
	if err := deps.events.SetFightResult(context.Background(), "2", "Amanda Lemos", event.MethodDecision); err != nil {
		t.Fatalf("set fight 2 result: %v", err)
	}

	picks := &brokenListingPicks{PickRepository: deps.picks, failFight: "2"}
	svc := usecase.NewScoringService(deps.events, picks, 3, time.Minute, logging.NewNop())

	if _, err := svc.RescoreCompletedFights(context.Background()); err == nil {
		t.Fatalf("expected list failure to be returned")
	}
	if got := picks.finished.Load(); got != 3 {
		t.Fatalf("expected all 3 submitted updates for fight 1 to finish before returning, got %d", got)
	}
}
