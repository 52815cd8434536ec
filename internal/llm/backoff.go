package llm

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes exponential wait times: Base * Multiplier^attempt,
// capped at Max when Max > 0. Jitter is a fraction (0.2 = ±20%); zero
// gives exact delays.
type Backoff struct {
	Base       time.Duration
	Multiplier float64
	Max        time.Duration
	Jitter     float64
}

// Delay returns the wait before retry number attempt+1 (attempt is 0-based).
func (b Backoff) Delay(attempt int) time.Duration {
	mult := b.Multiplier
	if mult <= 0 {
		mult = 2
	}
	wait := float64(b.Base) * math.Pow(mult, float64(attempt))
	if b.Max > 0 && wait > float64(b.Max) {
		wait = float64(b.Max)
	}
	if b.Jitter > 0 {
		wait += wait * b.Jitter * (2*rand.Float64() - 1)
	}
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
