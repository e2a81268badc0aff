package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/ranking"
)

// Leaderboard is a ranked league table for one scope. Determined is set
// when the caller left the round out and the resolver picked one.
type Leaderboard struct {
	LeagueID   string
	Scope      ranking.Scope
	Determined bool
	Entries    []ranking.Entry
}

type defaultRoundResolver interface {
	DefaultRound(ctx context.Context) (int, error)
}

type RankingService struct {
	leagueRepo league.Repository
	betRepo    bet.Repository
	resolver   defaultRoundResolver
}

func NewRankingService(leagueRepo league.Repository, betRepo bet.Repository, resolver defaultRoundResolver) *RankingService {
	return &RankingService{
		leagueRepo: leagueRepo,
		betRepo:    betRepo,
		resolver:   resolver,
	}
}

// GetLeaderboard computes the league table for the requested scope. An
// empty selector falls back to the default round; "all" aggregates the
// whole season and additionally credits round wins and ties.
func (s *RankingService) GetLeaderboard(ctx context.Context, leagueID, selector string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.GetLeaderboard")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return Leaderboard{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return Leaderboard{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	scope, determined, err := s.resolveScope(ctx, selector)
	if err != nil {
		return Leaderboard{}, err
	}

	round := 0
	if !scope.All {
		round = scope.Round
	}
	rows, err := s.betRepo.ListLeaderboardRows(ctx, leagueID, round)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list leaderboard rows: %w", err)
	}

	return Leaderboard{
		LeagueID:   leagueID,
		Scope:      scope,
		Determined: determined,
		Entries:    ranking.ComputeLeaderboard(rows, scope),
	}, nil
}

func (s *RankingService) resolveScope(ctx context.Context, selector string) (ranking.Scope, bool, error) {
	if strings.TrimSpace(selector) == "" {
		round, err := s.resolver.DefaultRound(ctx)
		if err != nil {
			return ranking.Scope{}, false, fmt.Errorf("resolve default round: %w", err)
		}
		return ranking.SingleRound(round), true, nil
	}

	scope, err := ranking.ParseScope(selector)
	if err != nil {
		return ranking.Scope{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return scope, false, nil
}
