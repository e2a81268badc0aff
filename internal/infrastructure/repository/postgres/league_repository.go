package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/palpiteiro/prediction-league/internal/domain/league"
	qb "github.com/palpiteiro/prediction-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) (league.League, error) {
	insertModel := leagueInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		Code:      item.Code,
		CreatedBy: item.CreatedBy,
		IsPublic:  item.IsPublic,
	}
	if item.Description != "" {
		insertModel.Description = &item.Description
	}

	query, args, err := qb.InsertModel("leagues", insertModel, "")
	if err != nil {
		return league.League{}, errors.Wrap(err, "build insert league query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return league.League{}, errors.Wrap(err, "insert league")
	}

	return item, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select leagues query")
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select leagues")
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", leagueID))
}

func (r *LeagueRepository) GetByCode(ctx context.Context, code string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("code", code))
}

func (r *LeagueRepository) getOne(ctx context.Context, cond qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return league.League{}, false, errors.Wrap(err, "build get league query")
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, errors.Wrap(err, "get league")
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	query, args, err := qb.Select("l.*").
		From("leagues l JOIN league_members m ON m.league_public_id = l.public_id").
		Where(
			qb.Eq("m.user_id", userID),
			qb.IsNull("m.deleted_at"),
			qb.IsNull("l.deleted_at"),
		).
		OrderBy("l.public_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select leagues by user query")
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select leagues by user")
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) Update(ctx context.Context, item league.League) error {
	query, args, err := qb.Update("leagues").
		Set("name", item.Name).
		Set("description", item.Description).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update league query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "update league")
	}

	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("leagues").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete league query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete league")
	}

	membersQuery, membersArgs, err := qb.Update("league_members").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete league members query")
	}
	if _, err := r.db.ExecContext(ctx, membersQuery, membersArgs...); err != nil {
		return errors.Wrap(err, "delete league members")
	}

	return nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, member league.Member) error {
	insertModel := leagueMemberInsertModel{
		LeagueID:  member.LeagueID,
		UserID:    member.UserID,
		UserName:  member.UserName,
		UserEmail: member.UserEmail,
		JoinedAt:  member.JoinedAt,
	}

	// Rejoining after a leave revives the soft-deleted row.
	suffix := "ON CONFLICT (league_public_id, user_id) DO UPDATE SET " +
		"deleted_at = NULL, joined_at = EXCLUDED.joined_at, " +
		"user_name = EXCLUDED.user_name, user_email = EXCLUDED.user_email"

	query, args, err := qb.InsertModel("league_members", insertModel, suffix)
	if err != nil {
		return errors.Wrap(err, "build insert league member query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert league member")
	}

	return nil
}

func (r *LeagueRepository) RemoveMember(ctx context.Context, leagueID, userID string) error {
	query, args, err := qb.Update("league_members").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build remove league member query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "remove league member")
	}

	return nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build league member check query")
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "check league member")
	}

	return count > 0, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("joined_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select league members query")
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select league members")
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Member{
			LeagueID:  row.LeagueID,
			UserID:    row.UserID,
			UserName:  row.UserName,
			UserEmail: row.UserEmail,
			JoinedAt:  row.JoinedAt,
		})
	}

	return out, nil
}
