package quizgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"
)

// ProviderFactory builds a Provider bound to one API key.
type ProviderFactory func(ctx context.Context, key string) (Provider, error)

// RetryPolicy bounds credential rotation. MaxAttempts <= 0 means one
// attempt per key.
type RetryPolicy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy waits 2s after the first rotation, doubling up to 30s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialWait: 2 * time.Second,
		MaxWait:     30 * time.Second,
		Multiplier:  2,
	}
}

// backoff returns the wait before retry number attempt+1.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	wait := float64(p.InitialWait) * math.Pow(mult, float64(attempt))
	if p.MaxWait > 0 && wait > float64(p.MaxWait) {
		wait = float64(p.MaxWait)
	}
	return time.Duration(wait)
}

// quotaMarkers are substrings that mark an untyped error as a quota or
// credential problem.
var quotaMarkers = []string{"429", "quota", "permission", "key", "unauthorized"}

// RotatingProvider spreads requests over an ordered list of API keys. A quota
// or credential failure moves to the next key, waits per the policy and
// retries; any other failure is returned immediately. The current key
// persists across calls.
type RotatingProvider struct {
	providers []Provider
	policy    RetryPolicy

	mu      sync.Mutex
	current int
}

// NewRotatingProvider builds one provider per key with factory.
func NewRotatingProvider(ctx context.Context, keys []string, factory ProviderFactory, policy RetryPolicy) (*RotatingProvider, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("quizgen: at least one API key is required")
	}
	providers := make([]Provider, len(keys))
	for i, key := range keys {
		p, err := factory(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("quizgen: key %d: %w", i+1, err)
		}
		providers[i] = p
	}
	return &RotatingProvider{providers: providers, policy: policy}, nil
}

func (r *RotatingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := r.policy.MaxAttempts
	if attempts <= 0 {
		attempts = len(r.providers)
	}

	var lastErr error
	for attempt := range attempts {
		idx, p := r.active()

		resp, err := p.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !isQuotaError(err) {
			return nil, err
		}
		lastErr = err

		next := r.rotate(idx)
		slog.Warn("rotating api key",
			"attempt", attempt+1,
			"max_attempts", attempts,
			"from", idx,
			"to", next,
			"error", err,
		)

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.policy.backoff(attempt)):
		}
	}

	return nil, &ErrCredentialsExhausted{Attempts: attempts, Err: lastErr}
}

// ModelID returns the model of the active provider.
func (r *RotatingProvider) ModelID() string {
	_, p := r.active()
	return p.ModelID()
}

// Current returns the index of the key the next request will use.
func (r *RotatingProvider) Current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *RotatingProvider) active() (int, Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.providers[r.current]
}

// rotate advances past idx unless a concurrent caller already did.
func (r *RotatingProvider) rotate(idx int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == idx {
		r.current = (idx + 1) % len(r.providers)
	}
	return r.current
}

func isQuotaError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var cred *ErrCredential
	if errors.As(err, &cred) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range quotaMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
