package postgres

import (
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/stats"
)

type userStatsTableModel struct {
	ID             int64     `db:"id"`
	LeagueID       string    `db:"league_public_id"`
	UserID         string    `db:"user_id"`
	TotalPoints    int       `db:"total_points"`
	ExactScores    int       `db:"exact_scores"`
	TotalBets      int       `db:"total_bets"`
	CorrectResults int       `db:"correct_results"`
	RoundsWon      int       `db:"rounds_won"`
	RoundsTied     int       `db:"rounds_tied"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (m userStatsTableModel) toDomain() stats.UserStats {
	return stats.UserStats{
		LeagueID:       m.LeagueID,
		UserID:         m.UserID,
		TotalPoints:    m.TotalPoints,
		ExactScores:    m.ExactScores,
		TotalBets:      m.TotalBets,
		CorrectResults: m.CorrectResults,
		RoundsWon:      m.RoundsWon,
		RoundsTied:     m.RoundsTied,
		UpdatedAt:      m.UpdatedAt,
	}
}

type userStatsInsertModel struct {
	LeagueID       string    `db:"league_public_id"`
	UserID         string    `db:"user_id"`
	TotalPoints    int       `db:"total_points"`
	ExactScores    int       `db:"exact_scores"`
	TotalBets      int       `db:"total_bets"`
	CorrectResults int       `db:"correct_results"`
	RoundsWon      int       `db:"rounds_won"`
	RoundsTied     int       `db:"rounds_tied"`
	UpdatedAt      time.Time `db:"updated_at"`
}
