package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/ranking"
	"github.com/palpiteiro/prediction-league/internal/domain/stats"
	"github.com/palpiteiro/prediction-league/internal/platform/resilience"
)

const defaultStatsRefreshInterval = 2 * time.Minute
const defaultStatsRefreshWorkers = 4

// StatsService maintains the per-league user stats side table. The
// table is a cache: the recomputation over raw bets is authoritative
// and a refresh always rewrites the whole league.
type StatsService struct {
	leagueRepo league.Repository
	betRepo    bet.Repository
	statsRepo  stats.Repository

	flight          resilience.SingleFlight
	refreshInterval time.Duration
	workers         int
	now             func() time.Time

	mu          sync.Mutex
	refreshedAt map[string]time.Time
}

func NewStatsService(leagueRepo league.Repository, betRepo bet.Repository, statsRepo stats.Repository, refreshInterval time.Duration, workers int) *StatsService {
	if refreshInterval <= 0 {
		refreshInterval = defaultStatsRefreshInterval
	}
	if workers < 1 {
		workers = defaultStatsRefreshWorkers
	}

	return &StatsService{
		leagueRepo:      leagueRepo,
		betRepo:         betRepo,
		statsRepo:       statsRepo,
		refreshInterval: refreshInterval,
		workers:         workers,
		now:             time.Now,
		refreshedAt:     make(map[string]time.Time),
	}
}

func (s *StatsService) ListByLeague(ctx context.Context, leagueID string) ([]stats.UserStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if err := s.EnsureFresh(ctx, leagueID); err != nil {
		return nil, err
	}

	items, err := s.statsRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list user stats: %w", err)
	}

	return items, nil
}

// EnsureFresh refreshes the league's stats rows unless they were
// rebuilt within the refresh interval. Concurrent callers for the same
// league share one recomputation.
func (s *StatsService) EnsureFresh(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	last, ok := s.refreshedAt[leagueID]
	s.mu.Unlock()
	if ok && s.now().Sub(last) < s.refreshInterval {
		return nil
	}

	_, err, _ := s.flight.Do("stats:"+leagueID, func() (any, error) {
		return nil, s.RefreshLeague(ctx, leagueID)
	})
	return err
}

// MarkStale forgets the league's last refresh time so the next read
// rebuilds the rows. Bet writes call it: a prediction changes the
// totals, and a replay also clears earlier settlement, so the cached
// rows must not be served past the mutation.
func (s *StatsService) MarkStale(leagueID string) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return
	}

	s.mu.Lock()
	delete(s.refreshedAt, leagueID)
	s.mu.Unlock()
}

// RefreshLeague unconditionally recomputes and rewrites one league.
func (s *StatsService) RefreshLeague(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RefreshLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	rows, err := s.betRepo.ListLeaderboardRows(ctx, leagueID, 0)
	if err != nil {
		return fmt.Errorf("list leaderboard rows for stats refresh: %w", err)
	}

	entries := ranking.ComputeLeaderboard(rows, ranking.AllRounds())
	now := s.now().UTC()
	fresh := make([]stats.UserStats, 0, len(entries))
	for _, entry := range entries {
		fresh = append(fresh, stats.UserStats{
			LeagueID:       leagueID,
			UserID:         entry.UserID,
			TotalPoints:    entry.TotalPoints,
			ExactScores:    entry.ExactScores,
			TotalBets:      entry.TotalBets,
			CorrectResults: entry.CorrectResults,
			RoundsWon:      entry.RoundsWon,
			RoundsTied:     entry.RoundsTied,
			UpdatedAt:      now,
		})
	}

	if err := s.statsRepo.ReplaceByLeague(ctx, leagueID, fresh); err != nil {
		return fmt.Errorf("replace user stats: %w", err)
	}

	s.mu.Lock()
	s.refreshedAt[leagueID] = s.now()
	s.mu.Unlock()

	return nil
}

// RefreshAll rebuilds every league's stats rows, a bounded number of
// leagues at a time. The first failure cancels the remaining work.
func (s *StatsService) RefreshAll(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RefreshAll")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list leagues for stats refresh: %w", err)
	}

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(s.workers)
	for _, item := range leagues {
		leagueID := item.ID
		p.Go(func(ctx context.Context) error {
			return s.RefreshLeague(ctx, leagueID)
		})
	}
	if err := p.Wait(); err != nil {
		return 0, err
	}

	return len(leagues), nil
}
