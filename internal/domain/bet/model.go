package bet

import (
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/match"
)

// Bet is one user's score prediction for one match within one league.
// Points and IsExact stay nil until the settlement job scores the bet
// after the match concludes; this service only reads them.
type Bet struct {
	ID        string
	UserID    string
	MatchID   string
	LeagueID  string
	HomeScore int
	AwayScore int
	Points    *int
	IsExact   *bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeagueBet is one member's bet joined with its match and the bettor's
// display name. The shared league view serves these so players can
// compare predictions.
type LeagueBet struct {
	Bet      Bet
	UserName string
	Match    match.Match
}

// LeaderboardRow is a bet pre-joined with the match round and the
// bettor's display fields, the shape the ranking engine consumes.
type LeaderboardRow struct {
	BetID    string
	UserID   string
	UserName string
	Round    int
	Points   *int
	IsExact  *bool
}
