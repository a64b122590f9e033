// Package ai turns one inbound utterance into a reply by walking an ordered
// chain of interchangeable text-generation providers.
package ai

import (
	"context"
	"errors"

	"github.com/mounish67/mindmate-ai-bot/internal/analysis/emotion"
)

// Request carries everything a provider needs to produce a reply.
type Request struct {
	Text    string
	Emotion emotion.Label
	Context string
}

// Typed provider failures. The chain treats timeout, transport, and
// malformed-response failures identically: log and advance. A provider that
// is not configured is skipped before any network call.
var (
	ErrNotConfigured     = errors.New("provider not configured")
	ErrTimeout           = errors.New("provider timed out")
	ErrTransport         = errors.New("provider transport failure")
	ErrMalformedResponse = errors.New("provider returned malformed response")
)

// Provider is one interchangeable reply-generating backend.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Ready reports whether the provider is configured at all. A false
	// answer must be computable without any network traffic.
	Ready() bool
	// Generate produces a reply or one of the typed failures above.
	Generate(ctx context.Context, req Request) (string, error)
}
