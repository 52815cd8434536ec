package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/alphabetz/alphabetz/ent/schema"
)

const (
	tableLLMRequests      = "llm_requests"
	tablePracticeSessions = "practice_sessions"
)

// entity is the part of an ent schema the store needs.
type entity interface {
	Mixin() []ent.Mixin
	Fields() []ent.Field
	Indexes() []ent.Index
}

var entities = []struct {
	table  string
	schema entity
}{
	{tableLLMRequests, schema.LLMRequestEvent{}},
	{tablePracticeSessions, schema.PracticeSessionEvent{}},
}

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// fieldsOf returns the mixin fields followed by the schema's own fields.
func fieldsOf(e entity) []*field.Descriptor {
	var out []*field.Descriptor
	for _, m := range e.Mixin() {
		for _, f := range m.Fields() {
			out = append(out, f.Descriptor())
		}
	}
	for _, f := range e.Fields() {
		out = append(out, f.Descriptor())
	}
	return out
}

func indexesOf(e entity) []ent.Index {
	var idx []ent.Index
	for _, m := range e.Mixin() {
		idx = append(idx, m.Indexes()...)
	}
	return append(idx, e.Indexes()...)
}

// columnOf maps a field to a column. Times are stored as Unix milliseconds.
func columnOf(d *field.Descriptor) (*sqlschema.Column, error) {
	if d.Err != nil {
		return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
	}

	c := &sqlschema.Column{Name: d.Name, Type: d.Info.Type, Unique: d.Unique}
	switch d.Info.Type {
	case field.TypeTime:
		c.Type = field.TypeInt64
	case field.TypeString, field.TypeBool, field.TypeInt, field.TypeInt64:
	default:
		return nil, fmt.Errorf("field %s: unsupported type %s", d.Name, d.Info.Type)
	}

	// Function defaults such as time.Now are applied by the repo.
	switch d.Default.(type) {
	case string, bool, int, int64:
		c.Default = d.Default
	}
	return c, nil
}

// indexName is <table>_<col>[_<col>...].
func indexName(table string, cols []string) string {
	return table + "_" + strings.Join(cols, "_")
}

// tableOf builds the table for an entity: an autoincrement id followed by
// the mixin and schema fields, plus the declared indexes.
func tableOf(name string, e entity) (*sqlschema.Table, error) {
	t := sqlschema.NewTable(name).
		AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, d := range fieldsOf(e) {
		c, err := columnOf(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		t.AddColumn(c)
	}
	for _, i := range indexesOf(e) {
		d := i.Descriptor()
		for _, f := range d.Fields {
			if !t.HasColumn(f) {
				return nil, fmt.Errorf("%s: index on unknown column %q", name, f)
			}
		}
		t.AddIndex(indexName(name, d.Fields), d.Unique, d.Fields)
	}
	return t, nil
}

func tables() ([]*sqlschema.Table, error) {
	out := make([]*sqlschema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableOf(e.table, e.schema)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// columnNames lists a table's columns in schema order, id first.
func columnNames(e entity) []string {
	names := []string{"id"}
	for _, d := range fieldsOf(e) {
		names = append(names, d.Name)
	}
	return names
}

// migrate creates missing tables, columns and indexes. It only appends.
func migrate(ctx context.Context, drv dialect.Driver) error {
	ts, err := tables()
	if err != nil {
		return err
	}
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Create(ctx, ts...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
