package postgres

import (
	"database/sql"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/match"
)

type betTableModel struct {
	ID        int64         `db:"id"`
	PublicID  string        `db:"public_id"`
	UserID    string        `db:"user_id"`
	MatchID   string        `db:"match_public_id"`
	LeagueID  string        `db:"league_public_id"`
	HomeScore int           `db:"home_score"`
	AwayScore int           `db:"away_score"`
	Points    sql.NullInt64 `db:"points"`
	IsExact   sql.NullBool  `db:"is_exact"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}

func (m betTableModel) toDomain() bet.Bet {
	return bet.Bet{
		ID:        m.PublicID,
		UserID:    m.UserID,
		MatchID:   m.MatchID,
		LeagueID:  m.LeagueID,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Points:    nullIntToPtr(m.Points),
		IsExact:   nullBoolToPtr(m.IsExact),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type betInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	MatchID   string    `db:"match_public_id"`
	LeagueID  string    `db:"league_public_id"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// leagueBetRowModel flattens the bets⋈matches⋈league_members join; the
// match score columns are aliased so they do not clash with the
// predicted scores on the bet.
type leagueBetRowModel struct {
	BetID          string        `db:"bet_public_id"`
	UserID         string        `db:"user_id"`
	UserName       string        `db:"user_name"`
	MatchID        string        `db:"match_public_id"`
	LeagueID       string        `db:"league_public_id"`
	HomeScore      int           `db:"home_score"`
	AwayScore      int           `db:"away_score"`
	Points         sql.NullInt64 `db:"points"`
	IsExact        sql.NullBool  `db:"is_exact"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	MatchHomeTeam  string        `db:"match_home_team"`
	MatchAwayTeam  string        `db:"match_away_team"`
	MatchHomeScore sql.NullInt64 `db:"match_home_score"`
	MatchAwayScore sql.NullInt64 `db:"match_away_score"`
	MatchKickoffAt time.Time     `db:"kickoff_at"`
	MatchRound     int           `db:"round"`
	MatchSeason    string        `db:"season"`
	MatchStatus    string        `db:"status"`
}

func (m leagueBetRowModel) toDomain() bet.LeagueBet {
	return bet.LeagueBet{
		Bet: bet.Bet{
			ID:        m.BetID,
			UserID:    m.UserID,
			MatchID:   m.MatchID,
			LeagueID:  m.LeagueID,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
			Points:    nullIntToPtr(m.Points),
			IsExact:   nullBoolToPtr(m.IsExact),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserName: m.UserName,
		Match: match.Match{
			ID:        m.MatchID,
			HomeTeam:  m.MatchHomeTeam,
			AwayTeam:  m.MatchAwayTeam,
			HomeScore: nullIntToPtr(m.MatchHomeScore),
			AwayScore: nullIntToPtr(m.MatchAwayScore),
			KickoffAt: m.MatchKickoffAt,
			Round:     m.MatchRound,
			Season:    m.MatchSeason,
			Status:    m.MatchStatus,
		},
	}
}

type leaderboardRowModel struct {
	BetID    string        `db:"bet_public_id"`
	UserID   string        `db:"user_id"`
	UserName string        `db:"user_name"`
	Round    int           `db:"round"`
	Points   sql.NullInt64 `db:"points"`
	IsExact  sql.NullBool  `db:"is_exact"`
}

func (m leaderboardRowModel) toDomain() bet.LeaderboardRow {
	return bet.LeaderboardRow{
		BetID:    m.BetID,
		UserID:   m.UserID,
		UserName: m.UserName,
		Round:    m.Round,
		Points:   nullIntToPtr(m.Points),
		IsExact:  nullBoolToPtr(m.IsExact),
	}
}
