package llm

import (
	"context"
	"errors"
)

// RetryProvider retries provider-side failures (5xx, unreachable, one
// malformed response). Throttling is never retried here: it is returned to
// the caller, which owns the throttling backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	sleep  SleepFunc
}

// WithRetry wraps p with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg, sleep: Sleep}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	backoff := Backoff{
		Base:       r.config.InitialWait,
		Multiplier: r.config.Multiplier,
		Max:        r.config.MaxWait,
		Jitter:     0.2,
	}

	var lastErr error
	invalidRetried := false
	for attempt := range attempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) || attempt == attempts-1 {
			break
		}
		if err := r.sleep(ctx, backoff.Delay(attempt)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrMissingAPIKey) || IsRateLimited(err) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	var unavail *ErrProviderUnavailable
	return errors.As(err, &unavail)
}
