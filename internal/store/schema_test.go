package store

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"testing"

	"entgo.io/ent/schema/field"

	"github.com/alphabetz/alphabetz/ent/schema"
)

func TestColumnsMatchSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema entity
		cols   []string
	}{
		{"llm", schema.LLMRequestEvent{}, llmColumns},
		{"practice", schema.PracticeSessionEvent{}, practiceColumns},
	}
	for _, tt := range tests {
		got := columnNames(tt.schema)
		want := slices.Clone(tt.cols)
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Errorf("%s columns = %v, want %v", tt.name, got, want)
		}
	}
}

func TestIndexesCreated(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{
		"llm_requests_purpose",
		"llm_requests_created_at",
		"practice_sessions_session_id",
	} {
		var got string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", name,
		).Scan(&got)
		if err != nil {
			t.Errorf("index %s: %v", name, err)
		}
	}
}

func TestTableOf(t *testing.T) {
	tbl, err := tableOf(tableLLMRequests, schema.LLMRequestEvent{})
	if err != nil {
		t.Fatalf("tableOf: %v", err)
	}

	if len(tbl.PrimaryKey) != 1 || tbl.PrimaryKey[0].Name != "id" || !tbl.PrimaryKey[0].Increment {
		t.Errorf("primary key = %+v, want autoincrement id", tbl.PrimaryKey)
	}

	created, ok := tbl.Column("created_at")
	if !ok {
		t.Fatal("missing created_at column")
	}
	if created.Type != field.TypeInt64 {
		t.Errorf("created_at type = %s, want %s", created.Type, field.TypeInt64)
	}
	if created.Default != nil {
		t.Errorf("created_at default = %v, want none", created.Default)
	}

	seq, _ := tbl.Column("sequence")
	if seq == nil || !seq.Unique {
		t.Errorf("sequence column = %+v, want unique", seq)
	}

	success, _ := tbl.Column("success")
	if success == nil || success.Default != false {
		t.Errorf("success column = %+v, want default false", success)
	}

	for _, name := range []string{"llm_requests_purpose", "llm_requests_model", "llm_requests_created_at"} {
		if _, ok := tbl.Index(name); !ok {
			t.Errorf("missing index %s", name)
		}
	}
}

func TestMigratedColumnTypes(t *testing.T) {
	s := openTestStore(t)
	rows, err := s.DB().Query("PRAGMA table_info(" + tableLLMRequests + ")")
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()

	types := map[string]string{}
	notNull := map[string]bool{}
	for rows.Next() {
		var (
			cid, nn, pk int
			name, typ   string
			dflt        sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &nn, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		types[name] = strings.ToLower(typ)
		notNull[name] = nn == 1
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := map[string]string{
		"id":           "integer",
		"sequence":     "integer",
		"created_at":   "integer",
		"purpose":      "text",
		"latency_ms":   "integer",
		"success":      "bool",
		"request_body": "text",
	}
	for col, typ := range want {
		if types[col] != typ {
			t.Errorf("%s type = %q, want %q", col, types[col], typ)
		}
	}
	if !notNull["created_at"] {
		t.Error("created_at should be NOT NULL")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.drv); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
