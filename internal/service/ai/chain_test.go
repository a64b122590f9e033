package ai_test

import (
	"context"
	"testing"
	"time"

	emotion "github.com/mounish67/mindmate-ai-bot/internal/analysis/emotion"
	"github.com/mounish67/mindmate-ai-bot/internal/service/ai"
)

type fakeProvider struct {
	name  string
	ready bool
	reply string
	err   error
	block bool
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Ready() bool { return p.ready }

func (p *fakeProvider) Generate(ctx context.Context, _ ai.Request) (string, error) {
	p.calls++
	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return p.reply, p.err
}

func contains(bucket []string, reply string) bool {
	for _, entry := range bucket {
		if entry == reply {
			return true
		}
	}
	return false
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeProvider{name: "first", ready: true, reply: "hello from first"}
	second := &fakeProvider{name: "second", ready: true, reply: "hello from second"}
	chain := ai.NewChain(time.Second, ai.DefaultFallbacks(), first, second)

	got := chain.Reply(context.Background(), ai.Request{Text: "hi"})
	if got != "hello from first" {
		t.Fatalf("expected first provider reply, got %q", got)
	}
	if second.calls != 0 {
		t.Fatal("second provider must not be invoked after a success")
	}
}

func TestChainAdvancesPastFailures(t *testing.T) {
	failures := []*fakeProvider{
		{name: "timeout", ready: true, err: ai.ErrTimeout},
		{name: "transport", ready: true, err: ai.ErrTransport},
		{name: "malformed", ready: true, err: ai.ErrMalformedResponse},
	}
	winner := &fakeProvider{name: "winner", ready: true, reply: "finally"}
	after := &fakeProvider{name: "after", ready: true, reply: "never"}

	chain := ai.NewChain(time.Second, ai.DefaultFallbacks(),
		failures[0], failures[1], failures[2], winner, after)

	got := chain.Reply(context.Background(), ai.Request{Text: "hi"})
	if got != "finally" {
		t.Fatalf("expected winner reply, got %q", got)
	}
	for _, p := range failures {
		if p.calls != 1 {
			t.Fatalf("provider %s invoked %d times, want exactly 1", p.name, p.calls)
		}
	}
	if after.calls != 0 {
		t.Fatal("providers after the winner must never be invoked")
	}
}

func TestChainSkipsUnconfiguredWithoutInvoking(t *testing.T) {
	unconfigured := &fakeProvider{name: "missing-creds", ready: false, reply: "nope"}
	winner := &fakeProvider{name: "winner", ready: true, reply: "ok"}
	chain := ai.NewChain(time.Second, ai.DefaultFallbacks(), unconfigured, winner)

	if got := chain.Reply(context.Background(), ai.Request{Text: "hi"}); got != "ok" {
		t.Fatalf("expected winner reply, got %q", got)
	}
	if unconfigured.calls != 0 {
		t.Fatal("unconfigured provider must be skipped without invocation")
	}
}

func TestChainEmptyReplyTreatedAsFailure(t *testing.T) {
	empty := &fakeProvider{name: "empty", ready: true, reply: "   "}
	winner := &fakeProvider{name: "winner", ready: true, reply: "substance"}
	chain := ai.NewChain(time.Second, ai.DefaultFallbacks(), empty, winner)

	if got := chain.Reply(context.Background(), ai.Request{Text: "hi"}); got != "substance" {
		t.Fatalf("expected winner reply, got %q", got)
	}
}

func TestChainHungProviderDoesNotStall(t *testing.T) {
	hung := &fakeProvider{name: "hung", ready: true, block: true}
	winner := &fakeProvider{name: "winner", ready: true, reply: "moving on"}
	chain := ai.NewChain(50*time.Millisecond, ai.DefaultFallbacks(), hung, winner)

	start := time.Now()
	got := chain.Reply(context.Background(), ai.Request{Text: "hi"})
	if got != "moving on" {
		t.Fatalf("expected winner reply, got %q", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("chain stalled for %s despite per-attempt timeout", elapsed)
	}
}

func TestChainFallbackKeyedByEmotion(t *testing.T) {
	broken := &fakeProvider{name: "broken", ready: true, err: ai.ErrTransport}
	fallbacks := ai.DefaultFallbacks()
	chain := ai.NewChain(time.Second, fallbacks, broken)

	got := chain.Reply(context.Background(), ai.Request{Text: "hi", Emotion: emotion.Sadness})
	if !contains(fallbacks[emotion.Sadness], got) {
		t.Fatalf("reply %q not drawn from the sadness bucket", got)
	}
}

func TestChainFallbackUnknownEmotionUsesNeutral(t *testing.T) {
	fallbacks := ai.DefaultFallbacks()
	chain := ai.NewChain(time.Second, fallbacks) // no providers at all

	got := chain.Reply(context.Background(), ai.Request{Text: "hi", Emotion: emotion.Label("mystery")})
	if !contains(fallbacks[emotion.Neutral], got) {
		t.Fatalf("reply %q not drawn from the neutral bucket", got)
	}
}
