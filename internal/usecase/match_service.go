package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/match"
	"github.com/palpiteiro/prediction-league/internal/domain/ranking"
)

// RoundMatches carries a round's matches together with the round that
// was actually served, so callers asking for the default round learn
// which one the resolver picked.
type RoundMatches struct {
	Round      int
	Determined bool
	Matches    []match.Match
}

type MatchService struct {
	matchRepo match.Repository
	now       func() time.Time
}

func NewMatchService(matchRepo match.Repository) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

// ListRound serves the matches of one round, or the whole schedule for
// the "all" selector. An empty selector means "the round the user most
// likely wants right now" and runs the default round resolver over the
// full schedule.
func (s *MatchService) ListRound(ctx context.Context, selector string) (RoundMatches, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListRound")
	defer span.End()

	scope, determined, err := s.resolveScope(ctx, selector)
	if err != nil {
		return RoundMatches{}, err
	}

	if scope.All {
		items, err := s.matchRepo.List(ctx)
		if err != nil {
			return RoundMatches{}, fmt.Errorf("list matches: %w", err)
		}
		return RoundMatches{Matches: items}, nil
	}

	items, err := s.matchRepo.ListByRound(ctx, scope.Round)
	if err != nil {
		return RoundMatches{}, fmt.Errorf("list matches by round: %w", err)
	}

	return RoundMatches{Round: scope.Round, Determined: determined, Matches: items}, nil
}

func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

// DefaultRound exposes the resolver on its own for callers that only
// need the round number.
func (s *MatchService) DefaultRound(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DefaultRound")
	defer span.End()

	all, err := s.matchRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list matches: %w", err)
	}

	return ranking.ResolveDefaultRound(all, s.now()), nil
}

func (s *MatchService) resolveScope(ctx context.Context, selector string) (ranking.Scope, bool, error) {
	if selector == "" {
		round, err := s.DefaultRound(ctx)
		if err != nil {
			return ranking.Scope{}, false, err
		}
		return ranking.SingleRound(round), true, nil
	}

	scope, err := ranking.ParseScope(selector)
	if err != nil {
		return ranking.Scope{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return scope, false, nil
}
