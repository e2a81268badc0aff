package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/match"
	"github.com/palpiteiro/prediction-league/internal/domain/ranking"
	idgen "github.com/palpiteiro/prediction-league/internal/platform/id"
)

// Bets lock shortly before kickoff so nobody predicts a match that is
// effectively underway.
const bettingCutoff = 5 * time.Minute

const maxPredictedScore = 99

type PlaceBetInput struct {
	UserID    string
	LeagueID  string
	MatchID   string
	HomeScore int
	AwayScore int
}

// statsInvalidator lets bet writes mark a league's cached stats rows
// stale so the next members read rebuilds them.
type statsInvalidator interface {
	MarkStale(leagueID string)
}

type BetService struct {
	betRepo    bet.Repository
	matchRepo  match.Repository
	leagueRepo league.Repository
	stats      statsInvalidator
	idGen      idgen.Generator
	now        func() time.Time
}

func NewBetService(betRepo bet.Repository, matchRepo match.Repository, leagueRepo league.Repository, statsInv statsInvalidator, idGen idgen.Generator) *BetService {
	return &BetService{
		betRepo:    betRepo,
		matchRepo:  matchRepo,
		leagueRepo: leagueRepo,
		stats:      statsInv,
		idGen:      idGen,
		now:        time.Now,
	}
}

// PlaceBet creates or replaces the caller's prediction for one match.
// Repeating the call before the cutoff simply overwrites the scores;
// settlement fields are never touched from here.
func (s *BetService) PlaceBet(ctx context.Context, input PlaceBetInput) (bet.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.PlaceBet")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.UserID == "" {
		return bet.Bet{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return bet.Bet{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return bet.Bet{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return bet.Bet{}, fmt.Errorf("%w: predicted scores must not be negative", ErrInvalidInput)
	}
	if input.HomeScore > maxPredictedScore || input.AwayScore > maxPredictedScore {
		return bet.Bet{}, fmt.Errorf("%w: predicted scores must not exceed %d", ErrInvalidInput, maxPredictedScore)
	}

	if err := s.requireMembership(ctx, input.LeagueID, input.UserID); err != nil {
		return bet.Bet{}, err
	}

	item, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return bet.Bet{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if err := s.requireOpenForBetting(item); err != nil {
		return bet.Bet{}, err
	}

	now := s.now().UTC()
	placed := bet.Bet{
		UserID:    input.UserID,
		MatchID:   input.MatchID,
		LeagueID:  input.LeagueID,
		HomeScore: input.HomeScore,
		AwayScore: input.AwayScore,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, exists, err := s.betRepo.GetForMatch(ctx, input.UserID, input.MatchID, input.LeagueID)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("get existing bet: %w", err)
	}
	if exists {
		placed.ID = existing.ID
		placed.CreatedAt = existing.CreatedAt
	} else {
		betID, err := s.idGen.NewID()
		if err != nil {
			return bet.Bet{}, fmt.Errorf("generate bet id: %w", err)
		}
		placed.ID = betID
	}

	saved, err := s.betRepo.Upsert(ctx, placed)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("upsert bet: %w", err)
	}

	// The write changed the league's totals (a replay also clears any
	// earlier settlement), so the cached stats rows must not outlive it.
	if s.stats != nil {
		s.stats.MarkStale(input.LeagueID)
	}

	return saved, nil
}

// LeagueBets carries every member's bets for one scope plus the round
// that was actually served.
type LeagueBets struct {
	LeagueID   string
	Scope      ranking.Scope
	Determined bool
	Bets       []bet.LeagueBet
}

// ListLeagueBets returns all members' bets in the league so players can
// see each other's predictions. An empty selector falls back to the
// default round; "all" spans the whole season. Members only.
func (s *BetService) ListLeagueBets(ctx context.Context, userID, leagueID, selector string) (LeagueBets, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.ListLeagueBets")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return LeagueBets{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return LeagueBets{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if err := s.requireMembership(ctx, leagueID, userID); err != nil {
		return LeagueBets{}, err
	}

	scope, determined, err := s.resolveScope(ctx, selector)
	if err != nil {
		return LeagueBets{}, err
	}

	round := 0
	if !scope.All {
		round = scope.Round
	}
	items, err := s.betRepo.ListLeagueBets(ctx, leagueID, round)
	if err != nil {
		return LeagueBets{}, fmt.Errorf("list league bets: %w", err)
	}

	return LeagueBets{
		LeagueID:   leagueID,
		Scope:      scope,
		Determined: determined,
		Bets:       items,
	}, nil
}

func (s *BetService) resolveScope(ctx context.Context, selector string) (ranking.Scope, bool, error) {
	if strings.TrimSpace(selector) == "" {
		all, err := s.matchRepo.List(ctx)
		if err != nil {
			return ranking.Scope{}, false, fmt.Errorf("list matches: %w", err)
		}
		return ranking.SingleRound(ranking.ResolveDefaultRound(all, s.now())), true, nil
	}

	scope, err := ranking.ParseScope(selector)
	if err != nil {
		return ranking.Scope{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return scope, false, nil
}

// ListMyBets returns the caller's bets, scoped to one league when
// leagueID is set and optionally to one round via the selector ("" or
// "all" mean every round).
func (s *BetService) ListMyBets(ctx context.Context, userID, leagueID, selector string) ([]bet.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.ListMyBets")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	round, err := parseOptionalRound(selector)
	if err != nil {
		return nil, err
	}

	if leagueID != "" {
		if err := s.requireMembership(ctx, leagueID, userID); err != nil {
			return nil, err
		}
	}

	items, err := s.betRepo.ListByUser(ctx, userID, leagueID, round)
	if err != nil {
		return nil, fmt.Errorf("list bets by user: %w", err)
	}

	return items, nil
}

func parseOptionalRound(selector string) (int, error) {
	if strings.TrimSpace(selector) == "" {
		return 0, nil
	}

	scope, err := ranking.ParseScope(selector)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if scope.All {
		return 0, nil
	}
	return scope.Round, nil
}

func (s *BetService) requireMembership(ctx context.Context, leagueID, userID string) error {
	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	isMember, err := s.leagueRepo.IsMember(ctx, leagueID, userID)
	if err != nil {
		return fmt.Errorf("check league member: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: you are not a member of this league", ErrUnauthorized)
	}

	return nil
}

func (s *BetService) requireOpenForBetting(item match.Match) error {
	if match.NormalizeStatus(item.Status) != match.StatusScheduled {
		return fmt.Errorf("%w: match is no longer scheduled", ErrBettingClosed)
	}
	if !item.KickoffAt.After(s.now().Add(bettingCutoff)) {
		return fmt.Errorf("%w: kickoff is less than %s away", ErrBettingClosed, bettingCutoff)
	}
	return nil
}
