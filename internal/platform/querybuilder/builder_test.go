package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("b.*").
		From("bets b JOIN matches m ON m.public_id = b.match_public_id").
		Where(Eq("b.user_id", "u-1"), Eq("m.round", 3), IsNull("b.deleted_at")).
		OrderBy("m.round", "b.public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT b.* FROM bets b JOIN matches m ON m.public_id = b.match_public_id" +
		" WHERE b.user_id = $1 AND m.round = $2 AND b.deleted_at IS NULL ORDER BY m.round, b.public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u-1" || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertBuilderWithSuffix(t *testing.T) {
	query, args, err := InsertInto("bets").
		Columns("public_id", "user_id").
		Values("bet-1", "u-1").
		Suffix("ON CONFLICT (public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO bets (public_id, user_id) VALUES ($1, $2) ON CONFLICT (public_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "bet-1" || args[1] != "u-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("user_stats").
		Columns("league_public_id", "user_id", "total_points").
		Values("lg-1", "u-1", 7).
		Values("lg-1", "u-2", 4).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO user_stats (league_public_id, user_id, total_points) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("leagues").
		Set("name", "Resenha FC").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "lg-1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE leagues SET name = $1, updated_at = NOW() WHERE public_id = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Resenha FC" || args[1] != "lg-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		UserID   string `db:"user_id"`
		Ignored  string `db:"-"`
		hidden   int
	}

	query, args, err := InsertModel("bets", row{PublicID: "bet-1", UserID: "u-1", hidden: 1}, "")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO bets (public_id, user_id) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "bet-1" || args[1] != "u-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
