package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmColumns = []string{
	"id", "sequence", "created_at", "provider", "model", "purpose", "request_id",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(tableLLMRequests).
		Columns(llmColumns[1:]...).
		Values(
			seqNum, r.clock().UnixMilli(), data.Provider, data.Model, data.Purpose, data.RequestID,
			data.InputTokens, data.OutputTokens, data.LatencyMs, boolInt(data.Success), data.ErrorMessage,
			data.RequestBody, data.ResponseBody,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	sel := sqlite().Select(llmColumns...).From(entsql.Table(tableLLMRequests))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	query, args := applyOpts(sel, opts).Query()

	records, err := r.scanLLMEvents(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return records, nil
}

// GetLLMEvent returns nil, nil when id does not exist.
func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	query, args := sqlite().Select(llmColumns...).
		From(entsql.Table(tableLLMRequests)).
		Where(entsql.EQ("id", id)).
		Query()

	records, err := r.scanLLMEvents(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (r *eventRepo) scanLLMEvents(ctx context.Context, query string, args []any) ([]LLMEventRecord, error) {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		var (
			rec     LLMEventRecord
			created int64
			success int
		)
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &created, &rec.Provider, &rec.Model, &rec.Purpose, &rec.RequestID,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage,
			&rec.RequestBody, &rec.ResponseBody,
		)
		if err != nil {
			return nil, err
		}
		rec.Timestamp = time.UnixMilli(created)
		rec.Success = success != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	usage, err := r.llmUsage(ctx, "purpose")
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	for i := range usage {
		usage[i].Purpose = usage[i].Model
		usage[i].Model = ""
	}
	return usage, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	usage, err := r.llmUsage(ctx, "model")
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	return usage, nil
}

// llmUsage groups by key; the key value is returned in LLMUsage.Model.
func (r *eventRepo) llmUsage(ctx context.Context, key string) ([]LLMUsage, error) {
	query, args := sqlite().Select(
		key,
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		entsql.As(entsql.Sum("success"), "successes"),
	).
		From(entsql.Table(tableLLMRequests)).
		GroupBy(key).
		OrderBy(key).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			u         LLMUsage
			avg       float64
			successes int
		)
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg, &successes); err != nil {
			return nil, err
		}
		u.AvgLatencyMs = int64(avg)
		u.Failures = u.Calls - successes
		out = append(out, u)
	}
	return out, rows.Err()
}
