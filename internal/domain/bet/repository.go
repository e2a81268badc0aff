package bet

import "context"

type Repository interface {
	GetForMatch(ctx context.Context, userID, matchID, leagueID string) (Bet, bool, error)
	// Upsert inserts the bet or replaces the predicted scores of an
	// existing (user, match, league) bet. Points and IsExact are never
	// written through this path.
	Upsert(ctx context.Context, item Bet) (Bet, error)
	// ListByUser returns a user's bets, optionally scoped to one league
	// (leagueID == "" means all leagues) and one round (round == 0
	// means all rounds).
	ListByUser(ctx context.Context, userID, leagueID string, round int) ([]Bet, error)
	// ListLeagueBets returns every member's bet in the league joined
	// with its match and the bettor's display name, optionally scoped
	// to one round (round == 0 means all rounds). Rows are ordered by
	// user name, then by kickoff descending.
	ListLeagueBets(ctx context.Context, leagueID string, round int) ([]LeagueBet, error)
	// ListLeaderboardRows returns every bet in the league joined with
	// match round and user name, optionally scoped to one round
	// (round == 0 means all rounds).
	ListLeaderboardRows(ctx context.Context, leagueID string, round int) ([]LeaderboardRow, error)
}
