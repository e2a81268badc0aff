package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
)

// BetRepository keeps bets in memory and joins rounds and member names
// from its sibling repositories, mirroring what the SQL variant does
// with table joins.
type BetRepository struct {
	mu    sync.RWMutex
	items map[string]bet.Bet
	order []string

	matches *MatchRepository
	leagues *LeagueRepository
}

func NewBetRepository(matches *MatchRepository, leagues *LeagueRepository, bets []bet.Bet) *BetRepository {
	items := make(map[string]bet.Bet, len(bets))
	order := make([]string, 0, len(bets))
	for _, b := range bets {
		key := betKey(b.UserID, b.MatchID, b.LeagueID)
		items[key] = b
		order = append(order, key)
	}

	return &BetRepository{
		items:   items,
		order:   order,
		matches: matches,
		leagues: leagues,
	}
}

func betKey(userID, matchID, leagueID string) string {
	return userID + "|" + matchID + "|" + leagueID
}

func (r *BetRepository) GetForMatch(_ context.Context, userID, matchID, leagueID string) (bet.Bet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[betKey(userID, matchID, leagueID)]
	if !ok {
		return bet.Bet{}, false, nil
	}

	return item, true, nil
}

func (r *BetRepository) Upsert(_ context.Context, item bet.Bet) (bet.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := betKey(item.UserID, item.MatchID, item.LeagueID)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		item.Points = nil
		item.IsExact = nil
	} else {
		r.order = append(r.order, key)
	}
	r.items[key] = item

	return item, nil
}

func (r *BetRepository) ListByUser(ctx context.Context, userID, leagueID string, round int) ([]bet.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bet.Bet, 0)
	for _, key := range r.order {
		item := r.items[key]
		if item.UserID != userID {
			continue
		}
		if leagueID != "" && item.LeagueID != leagueID {
			continue
		}
		if round > 0 && r.roundOf(ctx, item.MatchID) != round {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *BetRepository) ListLeagueBets(ctx context.Context, leagueID string, round int) ([]bet.LeagueBet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bet.LeagueBet, 0)
	for _, key := range r.order {
		item := r.items[key]
		if item.LeagueID != leagueID {
			continue
		}
		m, ok, err := r.matches.GetByID(ctx, item.MatchID)
		if err != nil || !ok {
			continue
		}
		if round > 0 && m.Round != round {
			continue
		}
		out = append(out, bet.LeagueBet{
			Bet:      item,
			UserName: r.leagues.MemberName(leagueID, item.UserID),
			Match:    m,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserName != out[j].UserName {
			return out[i].UserName < out[j].UserName
		}
		if !out[i].Match.KickoffAt.Equal(out[j].Match.KickoffAt) {
			return out[i].Match.KickoffAt.After(out[j].Match.KickoffAt)
		}
		return out[i].Bet.ID < out[j].Bet.ID
	})

	return out, nil
}

func (r *BetRepository) ListLeaderboardRows(ctx context.Context, leagueID string, round int) ([]bet.LeaderboardRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]bet.LeaderboardRow, 0)
	for _, key := range r.order {
		item := r.items[key]
		if item.LeagueID != leagueID {
			continue
		}
		betRound := r.roundOf(ctx, item.MatchID)
		if betRound == 0 {
			continue
		}
		if round > 0 && betRound != round {
			continue
		}
		rows = append(rows, bet.LeaderboardRow{
			BetID:    item.ID,
			UserID:   item.UserID,
			UserName: r.leagues.MemberName(leagueID, item.UserID),
			Round:    betRound,
			Points:   item.Points,
			IsExact:  item.IsExact,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Round != rows[j].Round {
			return rows[i].Round < rows[j].Round
		}
		if rows[i].UserID != rows[j].UserID {
			return rows[i].UserID < rows[j].UserID
		}
		return rows[i].BetID < rows[j].BetID
	})

	return rows, nil
}

func (r *BetRepository) roundOf(ctx context.Context, matchID string) int {
	m, ok, err := r.matches.GetByID(ctx, matchID)
	if err != nil || !ok {
		return 0
	}
	return m.Round
}
