package ai

import (
	"math/rand/v2"

	"github.com/mounish67/mindmate-ai-bot/internal/analysis/emotion"
)

// FallbackTable holds canned replies keyed by emotion, used when every
// provider in the chain has failed or none is configured.
type FallbackTable map[emotion.Label][]string

// DefaultFallbacks ships one bucket per known emotion label.
func DefaultFallbacks() FallbackTable {
	return FallbackTable{
		emotion.Joy: {
			"That's lovely to hear! What made your day brighter?",
			"I love that energy. Want to share what went well?",
		},
		emotion.Love: {
			"Love brings warmth. Hold onto that feeling.",
			"That sounds meaningful. Who or what inspired it?",
		},
		emotion.Sadness: {
			"I'm sorry it's heavy right now. Want to talk about what's weighing on you?",
			"It's okay to not be okay. What would feel supportive right now?",
		},
		emotion.Fear: {
			"That sounds unsettling. Let's slow down. What's the biggest worry?",
			"You're not alone. Would grounding or breathing help?",
		},
		emotion.Anger: {
			"It's valid to feel angry. What triggered it?",
			"Let's unpack it. What might help release that tension?",
		},
		emotion.Surprise: {
			"That sounds unexpected! How are you feeling about it now?",
			"Big moments can be a lot to take in. Want to walk me through it?",
		},
		emotion.Neutral: {
			"I'm here. What's been on your mind today?",
			"Tell me more; I'm listening.",
		},
	}
}

// Pick draws uniformly at random from the bucket for the detected emotion,
// falling back to the neutral bucket for unrecognized labels.
func (t FallbackTable) Pick(label emotion.Label) string {
	bucket, ok := t[label]
	if !ok || len(bucket) == 0 {
		bucket = t[emotion.Neutral]
	}
	if len(bucket) == 0 {
		return "I'm here. What's been on your mind today?"
	}
	return bucket[rand.IntN(len(bucket))]
}
