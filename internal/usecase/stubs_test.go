package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/match"
	"github.com/palpiteiro/prediction-league/internal/domain/stats"
)

type stubLeagueRepository struct {
	byID    map[string]league.League
	byCode  map[string]league.League
	members map[string]map[string]league.Member

	created []league.League
	updated []league.League
	deleted []string
	removed []string
}

func (s *stubLeagueRepository) Create(_ context.Context, item league.League) (league.League, error) {
	if s.byID == nil {
		s.byID = make(map[string]league.League)
	}
	s.byID[item.ID] = item
	s.created = append(s.created, item)
	return item, nil
}

func (s *stubLeagueRepository) List(_ context.Context) ([]league.League, error) {
	out := make([]league.League, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	item, ok := s.byID[leagueID]
	return item, ok, nil
}

func (s *stubLeagueRepository) GetByCode(_ context.Context, code string) (league.League, bool, error) {
	item, ok := s.byCode[code]
	return item, ok, nil
}

func (s *stubLeagueRepository) ListByUser(_ context.Context, userID string) ([]league.League, error) {
	out := make([]league.League, 0)
	for leagueID, byUser := range s.members {
		if _, ok := byUser[userID]; ok {
			out = append(out, s.byID[leagueID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubLeagueRepository) Update(_ context.Context, item league.League) error {
	s.byID[item.ID] = item
	s.updated = append(s.updated, item)
	return nil
}

func (s *stubLeagueRepository) Delete(_ context.Context, leagueID string) error {
	delete(s.byID, leagueID)
	s.deleted = append(s.deleted, leagueID)
	return nil
}

func (s *stubLeagueRepository) AddMember(_ context.Context, member league.Member) error {
	if s.members == nil {
		s.members = make(map[string]map[string]league.Member)
	}
	byUser, ok := s.members[member.LeagueID]
	if !ok {
		byUser = make(map[string]league.Member)
		s.members[member.LeagueID] = byUser
	}
	if _, exists := byUser[member.UserID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint \"league_members_pkey\"")
	}
	byUser[member.UserID] = member
	return nil
}

func (s *stubLeagueRepository) RemoveMember(_ context.Context, leagueID, userID string) error {
	delete(s.members[leagueID], userID)
	s.removed = append(s.removed, leagueID+"/"+userID)
	return nil
}

func (s *stubLeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	_, ok := s.members[leagueID][userID]
	return ok, nil
}

func (s *stubLeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	out := make([]league.Member, 0, len(s.members[leagueID]))
	for _, member := range s.members[leagueID] {
		out = append(out, member)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type stubMatchRepository struct {
	items []match.Match
}

func (s *stubMatchRepository) List(_ context.Context) ([]match.Match, error) {
	return s.items, nil
}

func (s *stubMatchRepository) ListByRound(_ context.Context, round int) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, item := range s.items {
		if item.Round == round {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubMatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	for _, item := range s.items {
		if item.ID == matchID {
			return item, true, nil
		}
	}
	return match.Match{}, false, nil
}

type stubBetRepository struct {
	rows       []bet.LeaderboardRow
	leagueBets []bet.LeagueBet
	bets       map[string]bet.Bet

	upserted []bet.Bet
}

func betKey(userID, matchID, leagueID string) string {
	return userID + "|" + matchID + "|" + leagueID
}

func (s *stubBetRepository) GetForMatch(_ context.Context, userID, matchID, leagueID string) (bet.Bet, bool, error) {
	item, ok := s.bets[betKey(userID, matchID, leagueID)]
	return item, ok, nil
}

func (s *stubBetRepository) Upsert(_ context.Context, item bet.Bet) (bet.Bet, error) {
	if s.bets == nil {
		s.bets = make(map[string]bet.Bet)
	}
	s.bets[betKey(item.UserID, item.MatchID, item.LeagueID)] = item
	s.upserted = append(s.upserted, item)
	return item, nil
}

func (s *stubBetRepository) ListByUser(_ context.Context, userID, leagueID string, round int) ([]bet.Bet, error) {
	out := make([]bet.Bet, 0)
	for _, item := range s.bets {
		if item.UserID != userID {
			continue
		}
		if leagueID != "" && item.LeagueID != leagueID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubBetRepository) ListLeagueBets(_ context.Context, leagueID string, round int) ([]bet.LeagueBet, error) {
	out := make([]bet.LeagueBet, 0)
	for _, item := range s.leagueBets {
		if item.Bet.LeagueID != leagueID {
			continue
		}
		if round > 0 && item.Match.Round != round {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *stubBetRepository) ListLeaderboardRows(_ context.Context, leagueID string, round int) ([]bet.LeaderboardRow, error) {
	if round == 0 {
		return s.rows, nil
	}
	out := make([]bet.LeaderboardRow, 0)
	for _, row := range s.rows {
		if row.Round == round {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubStatsRepository struct {
	mu       sync.Mutex
	byLeague map[string][]stats.UserStats
	replaces int
}

func (s *stubStatsRepository) ListByLeague(_ context.Context, leagueID string) ([]stats.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byLeague[leagueID], nil
}

func (s *stubStatsRepository) ReplaceByLeague(_ context.Context, leagueID string, rows []stats.UserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byLeague == nil {
		s.byLeague = make(map[string][]stats.UserStats)
	}
	s.byLeague[leagueID] = rows
	s.replaces++
	return nil
}

type stubStatsMarker struct {
	stale []string
}

func (s *stubStatsMarker) MarkStale(leagueID string) {
	s.stale = append(s.stale, leagueID)
}

type sequenceIDGenerator struct {
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

type fixedRoundResolver struct {
	round int
	err   error
}

func (r *fixedRoundResolver) DefaultRound(_ context.Context) (int, error) {
	return r.round, r.err
}
