package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 10 * time.Millisecond,
		MaxWait:     100 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// newTestRetry returns a RetryProvider that records waits instead of sleeping.
func newTestRetry(inner Provider) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := &RetryProvider{
		inner:  inner,
		config: retryConfig(),
		sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return ctx.Err()
		},
	}
	return r, &waits
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockJSON(`{"ok":true}`))
	p, waits := newTestRetry(mock)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 || len(*waits) != 0 {
		t.Fatalf("expected 1 call and no waits, got %d calls %v", mock.CallCount(), *waits)
	}
}

func TestRetry_UnavailableThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockJSON(`{"ok":true}`),
	)
	p, waits := newTestRetry(mock)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
	if len(*waits) != 1 {
		t.Fatalf("expected 1 wait, got %v", *waits)
	}
	// 10ms ±20% jitter.
	if w := (*waits)[0]; w < 8*time.Millisecond || w > 12*time.Millisecond {
		t.Fatalf("wait %v outside jitter band", w)
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p, waits := newTestRetry(mock)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
	if len(*waits) != 2 {
		t.Fatalf("expected 2 waits, got %v", *waits)
	}
}

func TestRetry_NotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rate limit is left to the caller", &ErrRateLimit{Err: errors.New("429")}},
		{"max tokens", &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}},
		{"missing key", ErrMissingAPIKey},
		{"cancelled", context.Canceled},
		{"plain error", errors.New("bad request")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockJSON(`{}`))
			p, _ := newTestRetry(mock)

			_, err := p.Generate(context.Background(), Request{})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if mock.CallCount() != 1 {
				t.Fatalf("expected 1 call, got %d", mock.CallCount())
			}
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := &ErrInvalidResponse{Err: errors.New("bad json")}
	mock := NewMockProvider(
		MockResponse{Err: invalid},
		MockResponse{Err: invalid},
		MockJSON(`{}`),
	)
	p, _ := newTestRetry(mock)

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancelledDuringWait(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockJSON(`{}`),
	)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, Multiplier: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestDecorate_SingleAttemptMakesOneCall(t *testing.T) {
	for _, e := range []error{
		&ErrProviderUnavailable{Err: errors.New("HTTP 503")},
		&ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("schema validation failed")},
	} {
		mock := NewMockProvider(MockResponse{Err: e}, MockJSON(`{"ok":true}`))
		p := Decorate(mock, DefaultConfig().SingleAttempt(), nil)

		_, err := p.Generate(context.Background(), Request{})
		if !errors.Is(err, e) {
			t.Errorf("error = %v, want %v", err, e)
		}
		if mock.CallCount() != 1 {
			t.Errorf("%v: calls = %d, want 1", e, mock.CallCount())
		}
	}
}

func TestSingleAttemptKeepsOtherSettings(t *testing.T) {
	cfg := DefaultConfig()
	single := cfg.SingleAttempt()
	if single.Retry.MaxAttempts != 1 {
		t.Errorf("MaxAttempts = %d, want 1", single.Retry.MaxAttempts)
	}
	if cfg.Retry.MaxAttempts != 2 {
		t.Errorf("original MaxAttempts changed to %d", cfg.Retry.MaxAttempts)
	}
	if single.Timeout != cfg.Timeout || single.Provider != cfg.Provider {
		t.Errorf("SingleAttempt changed more than retries: %+v", single)
	}
}
