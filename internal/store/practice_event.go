package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var practiceColumns = []string{
	"id", "sequence", "created_at", "session_id", "tense_categories", "forms", "voices",
	"question_types", "planned", "timer_secs", "score", "attempted", "full_session",
	"fallback_used", "duration_secs",
}

const listSep = ","

func (r *eventRepo) AppendPracticeSession(ctx context.Context, data PracticeSessionData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(tablePracticeSessions).
		Columns(practiceColumns[1:]...).
		Values(
			seqNum, r.clock().UnixMilli(), data.SessionID,
			strings.Join(data.TenseCategories, listSep), strings.Join(data.Forms, listSep),
			strings.Join(data.Voices, listSep), strings.Join(data.QuestionTypes, listSep),
			data.Planned, data.TimerSecs, data.Score, data.Attempted,
			boolInt(data.FullSession), boolInt(data.FallbackUsed), data.DurationSecs,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save practice session: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPracticeSessions(ctx context.Context, opts QueryOpts) ([]PracticeSessionRecord, error) {
	query, args := applyOpts(
		sqlite().Select(practiceColumns...).From(entsql.Table(tablePracticeSessions)),
		opts,
	).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query practice sessions: %w", err)
	}
	defer rows.Close()

	var out []PracticeSessionRecord
	for rows.Next() {
		var (
			rec                      PracticeSessionRecord
			created                  int64
			tensesCol, forms, voices string
			types                    string
			full, fallback           int
		)
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &created, &rec.SessionID, &tensesCol, &forms, &voices,
			&types, &rec.Planned, &rec.TimerSecs, &rec.Score, &rec.Attempted, &full,
			&fallback, &rec.DurationSecs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan practice session: %w", err)
		}
		rec.Timestamp = time.UnixMilli(created)
		rec.TenseCategories = splitList(tensesCol)
		rec.Forms = splitList(forms)
		rec.Voices = splitList(voices)
		rec.QuestionTypes = splitList(types)
		rec.FullSession = full != 0
		rec.FallbackUsed = fallback != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}
