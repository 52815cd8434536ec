package converter

import (
	"context"
	"time"

	"github.com/alphabetz/alphabetz/internal/convertgen"
	"github.com/alphabetz/alphabetz/internal/llm"
)

// Retry defaults: 3 attempts, waiting 1s then 2s between them.
const (
	DefaultAttempts  = 3
	DefaultBaseDelay = time.Second
)

// Retrier retries a Converter on throttling only. Waits are sequential and
// follow Backoff exactly: attempt k+1 starts Backoff.Delay(k) after
// attempt k failed.
type Retrier struct {
	conv     convertgen.Converter
	attempts int
	backoff  llm.Backoff
	sleep    llm.SleepFunc
}

// WithRetry wraps conv with the default throttling policy.
func WithRetry(conv convertgen.Converter) *Retrier {
	return &Retrier{
		conv:     conv,
		attempts: DefaultAttempts,
		backoff:  llm.Backoff{Base: DefaultBaseDelay, Multiplier: 2},
		sleep:    llm.Sleep,
	}
}

func (r *Retrier) Convert(ctx context.Context, req convertgen.Request) (*convertgen.Result, error) {
	for attempt := 0; ; attempt++ {
		res, err := r.conv.Convert(ctx, req)
		if err == nil {
			return res, nil
		}
		if !llm.IsRateLimited(err) || attempt >= r.attempts-1 {
			return nil, err
		}
		if err := r.sleep(ctx, r.backoff.Delay(attempt)); err != nil {
			return nil, err
		}
	}
}
