package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PracticeSessionEvent records one finished practice session, whether it
// ran to the last question or was ended early.
type PracticeSessionEvent struct {
	ent.Schema
}

func (PracticeSessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (PracticeSessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the session"),
		field.String("tense_categories").
			Default("").
			Comment("Comma-separated selection"),
		field.String("forms").
			Default(""),
		field.String("voices").
			Default(""),
		field.String("question_types").
			Default(""),
		field.Int("planned").
			Default(0).
			Comment("Questions in the batch"),
		field.Int("timer_secs").
			Default(0).
			Comment("Per-question limit, 0 for no timer"),
		field.Int("score").
			Default(0),
		field.Int("attempted").
			Default(0).
			Comment("Questions answered or timed out"),
		field.Bool("full_session").
			Default(false).
			Comment("False when the session was ended early"),
		field.Bool("fallback_used").
			Default(false).
			Comment("Offline questions filled part of the batch"),
		field.Int("duration_secs").
			Default(0),
	}
}

func (PracticeSessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
