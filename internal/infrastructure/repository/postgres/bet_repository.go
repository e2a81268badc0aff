package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	qb "github.com/palpiteiro/prediction-league/internal/platform/querybuilder"
)

type BetRepository struct {
	db *sqlx.DB
}

func NewBetRepository(db *sqlx.DB) *BetRepository {
	return &BetRepository{db: db}
}

func (r *BetRepository) GetForMatch(ctx context.Context, userID, matchID, leagueID string) (bet.Bet, bool, error) {
	query, args, err := qb.Select("*").From("bets").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return bet.Bet{}, false, errors.Wrap(err, "build get bet query")
	}

	var row betTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bet.Bet{}, false, nil
		}
		return bet.Bet{}, false, errors.Wrap(err, "get bet")
	}

	return row.toDomain(), true, nil
}

// Upsert keys on (user, match, league). A replay replaces the predicted
// scores and clears any earlier settlement so the bet is rescored
// against the new prediction.
func (r *BetRepository) Upsert(ctx context.Context, item bet.Bet) (bet.Bet, error) {
	insertModel := betInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		MatchID:   item.MatchID,
		LeagueID:  item.LeagueID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	suffix := "ON CONFLICT (user_id, match_public_id, league_public_id) DO UPDATE SET " +
		"home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score, " +
		"points = NULL, is_exact = NULL, updated_at = EXCLUDED.updated_at, deleted_at = NULL"

	query, args, err := qb.InsertModel("bets", insertModel, suffix)
	if err != nil {
		return bet.Bet{}, errors.Wrap(err, "build upsert bet query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return bet.Bet{}, errors.Wrap(err, "upsert bet")
	}

	saved, exists, err := r.GetForMatch(ctx, item.UserID, item.MatchID, item.LeagueID)
	if err != nil {
		return bet.Bet{}, err
	}
	if !exists {
		return bet.Bet{}, errors.New("bet missing after upsert")
	}

	return saved, nil
}

func (r *BetRepository) ListByUser(ctx context.Context, userID, leagueID string, round int) ([]bet.Bet, error) {
	builder := qb.Select("b.*").
		From("bets b JOIN matches m ON m.public_id = b.match_public_id").
		Where(
			qb.Eq("b.user_id", userID),
			qb.IsNull("b.deleted_at"),
			qb.IsNull("m.deleted_at"),
		).
		OrderBy("m.round", "m.kickoff_at", "b.public_id")
	if leagueID != "" {
		builder = builder.Where(qb.Eq("b.league_public_id", leagueID))
	}
	if round > 0 {
		builder = builder.Where(qb.Eq("m.round", round))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select bets by user query")
	}

	var rows []betTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select bets by user")
	}

	out := make([]bet.Bet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *BetRepository) ListLeagueBets(ctx context.Context, leagueID string, round int) ([]bet.LeagueBet, error) {
	builder := qb.Select(
		"b.public_id AS bet_public_id",
		"b.user_id",
		"mem.user_name",
		"b.match_public_id",
		"b.league_public_id",
		"b.home_score",
		"b.away_score",
		"b.points",
		"b.is_exact",
		"b.created_at",
		"b.updated_at",
		"m.home_team AS match_home_team",
		"m.away_team AS match_away_team",
		"m.home_score AS match_home_score",
		"m.away_score AS match_away_score",
		"m.kickoff_at",
		"m.round",
		"m.season",
		"m.status",
	).
		From("bets b " +
			"JOIN matches m ON m.public_id = b.match_public_id " +
			"JOIN league_members mem ON mem.league_public_id = b.league_public_id AND mem.user_id = b.user_id").
		Where(
			qb.Eq("b.league_public_id", leagueID),
			qb.IsNull("b.deleted_at"),
			qb.IsNull("m.deleted_at"),
			qb.IsNull("mem.deleted_at"),
		).
		OrderBy("mem.user_name", "m.kickoff_at DESC", "b.public_id")
	if round > 0 {
		builder = builder.Where(qb.Eq("m.round", round))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select league bets query")
	}

	var rows []leagueBetRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select league bets")
	}

	out := make([]bet.LeagueBet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *BetRepository) ListLeaderboardRows(ctx context.Context, leagueID string, round int) ([]bet.LeaderboardRow, error) {
	builder := qb.Select(
		"b.public_id AS bet_public_id",
		"b.user_id",
		"mem.user_name",
		"m.round",
		"b.points",
		"b.is_exact",
	).
		From("bets b " +
			"JOIN matches m ON m.public_id = b.match_public_id " +
			"JOIN league_members mem ON mem.league_public_id = b.league_public_id AND mem.user_id = b.user_id").
		Where(
			qb.Eq("b.league_public_id", leagueID),
			qb.IsNull("b.deleted_at"),
			qb.IsNull("m.deleted_at"),
			qb.IsNull("mem.deleted_at"),
		).
		OrderBy("m.round", "b.user_id", "b.public_id")
	if round > 0 {
		builder = builder.Where(qb.Eq("m.round", round))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select leaderboard rows query")
	}

	var rows []leaderboardRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select leaderboard rows")
	}

	out := make([]bet.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
