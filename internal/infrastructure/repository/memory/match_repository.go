package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palpiteiro/prediction-league/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
	order []string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	order := make([]string, 0, len(matches))

	for _, m := range matches {
		items[m.ID] = m
		order = append(order, m.ID)
	}

	return &MatchRepository{
		items: items,
		order: order,
	}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})

	return out, nil
}

func (r *MatchRepository) ListByRound(ctx context.Context, round int) ([]match.Match, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0)
	for _, m := range all {
		if m.Round == round {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return m, true, nil
}
