package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("snapshot").
		From("user_states").
		Where(Eq("user_id", "user-1")).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT snapshot FROM user_states WHERE user_id = $1 LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "user-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_OrderBy(t *testing.T) {
	query, args, err := Select("user_id").
		From("user_states").
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id FROM user_states ORDER BY user_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		UserID   string `db:"user_id"`
		Snapshot []byte `db:"snapshot"`
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("user_states", row{
		UserID:   "user-1",
		Snapshot: []byte(`{}`),
	}, "ON CONFLICT (user_id) DO UPDATE SET snapshot = EXCLUDED.snapshot")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO user_states (user_id, snapshot) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET snapshot = EXCLUDED.snapshot"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "user-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	_, _, err := InsertInto("user_states").
		Columns("user_id", "snapshot").
		Values("user-1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for value count mismatch")
	}
}
