package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	"github.com/sourcegraph/conc/pool"
)

type LeaderboardEntry struct {
	UserID     string
	Name       string
	TotalScore int
}

type Leaderboard struct {
	UserPicks []pick.Detail
	Entries   []LeaderboardEntry
}

type LeaderboardService struct {
	pickRepo pick.Repository
}

func NewLeaderboardService(pickRepo pick.Repository) *LeaderboardService {
	return &LeaderboardService{pickRepo: pickRepo}
}

// Get ranks every user by the sum of their pick scores across all events and
// includes the requesting user's own picks. Ties keep storage order.
func (s *LeaderboardService) Get(ctx context.Context, userID string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Leaderboard{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	var (
		totals    []pick.UserTotal
		userPicks []pick.Detail
	)
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.pickRepo.ListUserTotals(ctx)
		if err != nil {
			return fmt.Errorf("list user totals: %w", err)
		}
		totals = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.pickRepo.ListDetailsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list user picks: %w", err)
		}
		userPicks = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return Leaderboard{}, err
	}

	return Leaderboard{
		UserPicks: userPicks,
		Entries:   rankTotals(totals),
	}, nil
}

func rankTotals(totals []pick.UserTotal) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(totals))
	for _, t := range totals {
		entries = append(entries, LeaderboardEntry{
			UserID:     t.UserID,
			Name:       t.Name,
			TotalScore: t.TotalScore,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	return entries
}
