package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/palpiteiro/prediction-league/internal/domain/stats"
	qb "github.com/palpiteiro/prediction-league/internal/platform/querybuilder"
)

type UserStatsRepository struct {
	db *sqlx.DB
}

func NewUserStatsRepository(db *sqlx.DB) *UserStatsRepository {
	return &UserStatsRepository{db: db}
}

func (r *UserStatsRepository) ListByLeague(ctx context.Context, leagueID string) ([]stats.UserStats, error) {
	query, args, err := qb.Select("*").From("user_stats").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("total_points DESC", "exact_scores DESC", "user_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select user stats query")
	}

	var rows []userStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select user stats")
	}

	out := make([]stats.UserStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// ReplaceByLeague swaps the league's rows inside one transaction so
// readers never observe a half-written refresh.
func (r *UserStatsRepository) ReplaceByLeague(ctx context.Context, leagueID string, rows []stats.UserStats) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin user stats transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM user_stats WHERE league_public_id = $1", leagueID); err != nil {
		return errors.Wrap(err, "clear user stats")
	}

	if len(rows) > 0 {
		builder := qb.InsertInto("user_stats").Columns(
			"league_public_id", "user_id", "total_points", "exact_scores",
			"total_bets", "correct_results", "rounds_won", "rounds_tied", "updated_at",
		)
		for _, row := range rows {
			builder = builder.Values(
				row.LeagueID, row.UserID, row.TotalPoints, row.ExactScores,
				row.TotalBets, row.CorrectResults, row.RoundsWon, row.RoundsTied, row.UpdatedAt,
			)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return errors.Wrap(err, "build insert user stats query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "insert user stats")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit user stats transaction")
	}

	return nil
}
