package postgres

import (
	"database/sql"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/match"
)

type matchTableModel struct {
	ID        int64         `db:"id"`
	PublicID  string        `db:"public_id"`
	APIRefID  sql.NullInt64 `db:"api_ref_id"`
	HomeTeam  string        `db:"home_team"`
	AwayTeam  string        `db:"away_team"`
	HomeScore sql.NullInt64 `db:"home_score"`
	AwayScore sql.NullInt64 `db:"away_score"`
	KickoffAt time.Time     `db:"kickoff_at"`
	Round     int           `db:"round"`
	Season    string        `db:"season"`
	Status    string        `db:"status"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:        m.PublicID,
		APIRefID:  m.APIRefID.Int64,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		HomeScore: nullIntToPtr(m.HomeScore),
		AwayScore: nullIntToPtr(m.AwayScore),
		KickoffAt: m.KickoffAt,
		Round:     m.Round,
		Season:    m.Season,
		Status:    match.NormalizeStatus(m.Status),
	}
}
