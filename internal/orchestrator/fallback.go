package orchestrator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kararlabs/meetmind/internal/provider"
)

var (
	// ErrNoProvidersConfigured means no provider has credentials. Surfaced
	// immediately; adding credentials is the only fix.
	ErrNoProvidersConfigured = errors.New("no AI provider configured")

	// ErrNoWorkingProvider means every configured provider failed its
	// round-trip test. Retrying later may help.
	ErrNoWorkingProvider = errors.New("no working AI provider available")
)

// Outer retry tuning. The outer loop re-runs provider selection plus the
// operation, absorbing provider-wide outages; the per-call inner loop in
// internal/provider absorbs per-key rate limits.
const (
	outerMaxAttempts = 3
	outerBaseDelay   = 1000 * time.Millisecond
	outerMaxDelay    = 10000 * time.Millisecond
)

// backoffDelay returns min(base·2^attempt, max) for the 0-based attempt
// that just failed.
func backoffDelay(attempt int) time.Duration {
	d := outerBaseDelay << uint(attempt)
	if d > outerMaxDelay {
		d = outerMaxDelay
	}
	return d
}

// candidates builds the ordered, de-duplicated provider list: the
// preferred provider first when it names a known kind, then the fixed
// priority order.
func (s *Service) candidates(preferred string) []provider.Client {
	var out []provider.Client
	seen := make(map[provider.Kind]bool)

	if kind, ok := provider.KindFromName(preferred); ok {
		out = append(out, s.registry.Get(kind))
		seen[kind] = true
	}
	for _, kind := range provider.PriorityOrder {
		if seen[kind] {
			continue
		}
		out = append(out, s.registry.Get(kind))
		seen[kind] = true
	}
	return out
}

// selectWorkingProvider walks the candidate list, skipping unconfigured
// providers and gating the rest on a cheap round-trip test. The selected
// provider is always configured.
func (s *Service) selectWorkingProvider(ctx context.Context, candidates []provider.Client) (provider.Client, error) {
	anyConfigured := false
	for _, c := range candidates {
		if !c.Configured() {
			continue
		}
		anyConfigured = true

		if err := c.Test(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn("provider failed test, trying next",
				zap.String("provider", string(c.Kind())), zap.Error(err))
			s.metrics.IncProviderFallback()
			continue
		}
		return c, nil
	}

	if !anyConfigured {
		return nil, ErrNoProvidersConfigured
	}
	return nil, ErrNoWorkingProvider
}

// runWithFallback wraps provider selection plus the operation in the
// outer retry loop. Rate-limited failures sleep with exponential backoff
// before the next attempt; the final attempt's error propagates unchanged.
func (s *Service) runWithFallback(ctx context.Context, preferred string, op func(context.Context, provider.Client) error) (string, error) {
	var lastErr error
	for attempt := 0; attempt < outerMaxAttempts; attempt++ {
		client, err := s.selectWorkingProvider(ctx, s.candidates(preferred))
		if err != nil {
			if errors.Is(err, ErrNoProvidersConfigured) || ctx.Err() != nil {
				return "", err
			}
			lastErr = err
		} else {
			err = op(ctx, client)
			if err == nil {
				return string(client.Kind()), nil
			}
			if ctx.Err() != nil {
				return "", err
			}
			s.log.Warn("provider operation failed",
				zap.String("provider", string(client.Kind())),
				zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
		}

		if attempt == outerMaxAttempts-1 {
			break
		}
		if provider.IsRateLimited(lastErr) {
			if err := sleep(ctx, backoffDelay(attempt)); err != nil {
				return "", err
			}
		}
	}
	return "", lastErr
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
