package match

import "context"

type Repository interface {
	// List returns every known match across all rounds.
	List(ctx context.Context) ([]Match, error)
	// ListByRound returns the matches belonging to one round.
	ListByRound(ctx context.Context, round int) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
}
