package cache

import (
	"context"
	"strconv"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/match"
	basecache "github.com/palpiteiro/prediction-league/internal/platform/cache"
)

// MatchRepository caches the match schedule. Matches change only when
// the external ingestion collaborator rewrites them, so a short TTL is
// enough to keep reads cheap without an explicit invalidation hook.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) ListByRound(ctx context.Context, round int) ([]match.Match, error) {
	key := "match:round:" + strconv.Itoa(round)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByRound(ctx, round)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

// BetRepository caches leaderboard rows per league and drops them when
// any bet in the league changes. Point lookups and bet listings pass
// through: they are cheap and must reflect a write immediately.
type BetRepository struct {
	next  bet.Repository
	cache *basecache.Store
}

func NewBetRepository(next bet.Repository, cache *basecache.Store) *BetRepository {
	return &BetRepository{next: next, cache: cache}
}

func (r *BetRepository) GetForMatch(ctx context.Context, userID, matchID, leagueID string) (bet.Bet, bool, error) {
	return r.next.GetForMatch(ctx, userID, matchID, leagueID)
}

func (r *BetRepository) Upsert(ctx context.Context, item bet.Bet) (bet.Bet, error) {
	saved, err := r.next.Upsert(ctx, item)
	if err != nil {
		return bet.Bet{}, err
	}

	r.cache.DeletePrefix(ctx, "leaderboard:"+item.LeagueID+":")

	return saved, nil
}

func (r *BetRepository) ListByUser(ctx context.Context, userID, leagueID string, round int) ([]bet.Bet, error) {
	return r.next.ListByUser(ctx, userID, leagueID, round)
}

func (r *BetRepository) ListLeagueBets(ctx context.Context, leagueID string, round int) ([]bet.LeagueBet, error) {
	return r.next.ListLeagueBets(ctx, leagueID, round)
}

func (r *BetRepository) ListLeaderboardRows(ctx context.Context, leagueID string, round int) ([]bet.LeaderboardRow, error) {
	key := "leaderboard:" + leagueID + ":" + strconv.Itoa(round)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		rows, err := r.next.ListLeaderboardRows(ctx, leagueID, round)
		if err != nil {
			return nil, err
		}
		return append([]bet.LeaderboardRow(nil), rows...), nil
	})
	if err != nil {
		return nil, err
	}

	rows, _ := v.([]bet.LeaderboardRow)
	return append([]bet.LeaderboardRow(nil), rows...), nil
}
