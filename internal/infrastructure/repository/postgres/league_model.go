package postgres

import (
	"database/sql"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Code        string         `db:"code"`
	CreatedBy   string         `db:"created_by"`
	IsPublic    bool           `db:"is_public"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          m.PublicID,
		Name:        m.Name,
		Description: m.Description.String,
		Code:        m.Code,
		CreatedBy:   m.CreatedBy,
		IsPublic:    m.IsPublic,
		CreatedAt:   m.CreatedAt,
	}
}

type leagueInsertModel struct {
	PublicID    string  `db:"public_id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Code        string  `db:"code"`
	CreatedBy   string  `db:"created_by"`
	IsPublic    bool    `db:"is_public"`
}

type leagueMemberTableModel struct {
	ID        int64      `db:"id"`
	LeagueID  string     `db:"league_public_id"`
	UserID    string     `db:"user_id"`
	UserName  string     `db:"user_name"`
	UserEmail string     `db:"user_email"`
	JoinedAt  time.Time  `db:"joined_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type leagueMemberInsertModel struct {
	LeagueID  string    `db:"league_public_id"`
	UserID    string    `db:"user_id"`
	UserName  string    `db:"user_name"`
	UserEmail string    `db:"user_email"`
	JoinedAt  time.Time `db:"joined_at"`
}
