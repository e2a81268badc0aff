package stats

import "time"

// UserStats is a denormalized snapshot of one user's league totals,
// kept as a side table for cheap member listings. The recomputation
// over raw bets remains the source of truth; rows here are refreshed
// on demand and must match it exactly.
type UserStats struct {
	LeagueID       string
	UserID         string
	TotalPoints    int
	ExactScores    int
	TotalBets      int
	CorrectResults int
	RoundsWon      int
	RoundsTied     int
	UpdatedAt      time.Time
}
