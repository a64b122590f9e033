package ai

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// DefaultAttemptTimeout bounds each individual provider invocation.
const DefaultAttemptTimeout = 15 * time.Second

// Chain walks its providers in fixed priority order until one returns a
// well-formed reply. Every failure is absorbed here: callers always get a
// usable reply string, never an error.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	fallbacks FallbackTable
}

// NewChain builds a chain over the given providers in priority order.
func NewChain(timeout time.Duration, fallbacks FallbackTable, providers ...Provider) *Chain {
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	if fallbacks == nil {
		fallbacks = DefaultFallbacks()
	}
	return &Chain{providers: providers, timeout: timeout, fallbacks: fallbacks}
}

// Reply returns the first successful provider output, or a canned reply from
// the emotion-keyed fallback table when every provider fails or is skipped.
func (c *Chain) Reply(ctx context.Context, req Request) string {
	for _, provider := range c.providers {
		if !provider.Ready() {
			log.Printf("[chain] provider=%s skipped: %v", provider.Name(), ErrNotConfigured)
			continue
		}

		text, err := c.attempt(ctx, provider, req)
		if err != nil {
			log.Printf("[chain] provider=%s failed: %v", provider.Name(), err)
			continue
		}
		return text
	}

	log.Printf("[chain] all providers exhausted, using fallback for emotion=%s", req.Emotion)
	return c.fallbacks.Pick(req.Emotion)
}

// attempt invokes one provider under the chain's per-attempt budget. The call
// is fire-and-wait: a hung provider is abandoned once the budget elapses and
// must not stall the chain, so the invocation runs in its own goroutine.
func (c *Chain) attempt(ctx context.Context, provider Provider, req Request) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		text, err := provider.Generate(attemptCtx, req)
		done <- outcome{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		if strings.TrimSpace(res.text) == "" {
			return "", ErrMalformedResponse
		}
		return res.text, nil
	case <-attemptCtx.Done():
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", attemptCtx.Err()
	}
}
