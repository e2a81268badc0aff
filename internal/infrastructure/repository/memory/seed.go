package memory

import (
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/match"
)

const (
	SeedLeagueID   = "demo-resenha-fc"
	SeedLeagueCode = "RESENHA1"
)

// SeedMatches covers three rounds of a running season: round 1 fully
// played, round 2 in progress, round 3 scheduled. Kickoffs are pinned
// relative to the given reference time so the default round resolver
// has something sensible to chew on.
func SeedMatches(now time.Time) []match.Match {
	day := 24 * time.Hour
	score := func(v int) *int { return &v }

	return []match.Match{
		{
			ID: "demo-m-0101", HomeTeam: "Flamengo", AwayTeam: "Palmeiras",
			HomeScore: score(2), AwayScore: score(1),
			KickoffAt: now.Add(-9 * day), Round: 1, Season: "2025", Status: match.StatusFinished,
		},
		{
			ID: "demo-m-0102", HomeTeam: "Corinthians", AwayTeam: "Santos",
			HomeScore: score(0), AwayScore: score(0),
			KickoffAt: now.Add(-8 * day), Round: 1, Season: "2025", Status: match.StatusFinished,
		},
		{
			ID: "demo-m-0201", HomeTeam: "Palmeiras", AwayTeam: "Corinthians",
			HomeScore: score(1), AwayScore: score(0),
			KickoffAt: now.Add(-2 * day), Round: 2, Season: "2025", Status: match.StatusFinished,
		},
		{
			ID: "demo-m-0202", HomeTeam: "Santos", AwayTeam: "Flamengo",
			KickoffAt: now.Add(2 * day), Round: 2, Season: "2025", Status: match.StatusScheduled,
		},
		{
			ID: "demo-m-0301", HomeTeam: "Flamengo", AwayTeam: "Corinthians",
			KickoffAt: now.Add(6 * day), Round: 3, Season: "2025", Status: match.StatusScheduled,
		},
		{
			ID: "demo-m-0302", HomeTeam: "Palmeiras", AwayTeam: "Santos",
			KickoffAt: now.Add(7 * day), Round: 3, Season: "2025", Status: match.StatusScheduled,
		},
	}
}

func SeedLeagues(now time.Time) []league.League {
	return []league.League{
		{
			ID:          SeedLeagueID,
			Name:        "Resenha FC",
			Description: "Demo prediction league",
			Code:        SeedLeagueCode,
			CreatedBy:   "demo-ana",
			IsPublic:    true,
			CreatedAt:   now.Add(-30 * 24 * time.Hour),
		},
	}
}

func SeedMembers(now time.Time) []league.Member {
	joined := now.Add(-30 * 24 * time.Hour)
	return []league.Member{
		{LeagueID: SeedLeagueID, UserID: "demo-ana", UserName: "Ana", UserEmail: "ana@example.com", JoinedAt: joined},
		{LeagueID: SeedLeagueID, UserID: "demo-beto", UserName: "Beto", UserEmail: "beto@example.com", JoinedAt: joined.Add(time.Hour)},
		{LeagueID: SeedLeagueID, UserID: "demo-clara", UserName: "Clara", UserEmail: "clara@example.com", JoinedAt: joined.Add(2 * time.Hour)},
	}
}

// SeedBets holds already-settled round 1 bets plus open round 2 bets,
// enough to light up the leaderboard and the stats table.
func SeedBets(now time.Time) []bet.Bet {
	points := func(v int) *int { return &v }
	exact := func(v bool) *bool { return &v }
	placed := now.Add(-10 * 24 * time.Hour)

	return []bet.Bet{
		// Round 1, Flamengo 2-1 Palmeiras.
		{ID: "demo-b-01", UserID: "demo-ana", MatchID: "demo-m-0101", LeagueID: SeedLeagueID, HomeScore: 2, AwayScore: 1, Points: points(3), IsExact: exact(true), CreatedAt: placed, UpdatedAt: placed},
		{ID: "demo-b-02", UserID: "demo-beto", MatchID: "demo-m-0101", LeagueID: SeedLeagueID, HomeScore: 1, AwayScore: 0, Points: points(1), IsExact: exact(false), CreatedAt: placed, UpdatedAt: placed},
		{ID: "demo-b-03", UserID: "demo-clara", MatchID: "demo-m-0101", LeagueID: SeedLeagueID, HomeScore: 0, AwayScore: 2, Points: points(0), IsExact: exact(false), CreatedAt: placed, UpdatedAt: placed},
		// Round 1, Corinthians 0-0 Santos.
		{ID: "demo-b-04", UserID: "demo-ana", MatchID: "demo-m-0102", LeagueID: SeedLeagueID, HomeScore: 1, AwayScore: 1, Points: points(1), IsExact: exact(false), CreatedAt: placed, UpdatedAt: placed},
		{ID: "demo-b-05", UserID: "demo-beto", MatchID: "demo-m-0102", LeagueID: SeedLeagueID, HomeScore: 0, AwayScore: 0, Points: points(3), IsExact: exact(true), CreatedAt: placed, UpdatedAt: placed},
		// Round 2, Palmeiras 1-0 Corinthians, settled.
		{ID: "demo-b-06", UserID: "demo-ana", MatchID: "demo-m-0201", LeagueID: SeedLeagueID, HomeScore: 1, AwayScore: 0, Points: points(3), IsExact: exact(true), CreatedAt: placed, UpdatedAt: placed},
		{ID: "demo-b-07", UserID: "demo-clara", MatchID: "demo-m-0201", LeagueID: SeedLeagueID, HomeScore: 2, AwayScore: 0, Points: points(1), IsExact: exact(false), CreatedAt: placed, UpdatedAt: placed},
		// Round 2, Santos x Flamengo, still open.
		{ID: "demo-b-08", UserID: "demo-beto", MatchID: "demo-m-0202", LeagueID: SeedLeagueID, HomeScore: 0, AwayScore: 2, CreatedAt: placed, UpdatedAt: placed},
	}
}
