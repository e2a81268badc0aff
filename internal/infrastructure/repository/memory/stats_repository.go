package memory

import (
	"context"
	"sync"

	"github.com/palpiteiro/prediction-league/internal/domain/stats"
)

type UserStatsRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]stats.UserStats
}

func NewUserStatsRepository() *UserStatsRepository {
	return &UserStatsRepository{
		byLeague: make(map[string][]stats.UserStats),
	}
}

func (r *UserStatsRepository) ListByLeague(_ context.Context, leagueID string) ([]stats.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byLeague[leagueID]
	out := make([]stats.UserStats, len(rows))
	copy(out, rows)

	return out, nil
}

func (r *UserStatsRepository) ReplaceByLeague(_ context.Context, leagueID string, rows []stats.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fresh := make([]stats.UserStats, len(rows))
	copy(fresh, rows)
	r.byLeague[leagueID] = fresh

	return nil
}
