package stats

import "context"

type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]UserStats, error)
	// ReplaceByLeague atomically swaps the league's cached rows for the
	// freshly recomputed set.
	ReplaceByLeague(ctx context.Context, leagueID string, rows []UserStats) error
}
