package emotion_test

import (
	"context"
	"testing"

	analysis "github.com/mounish67/mindmate-ai-bot/internal/analysis/emotion"
	emotionservice "github.com/mounish67/mindmate-ai-bot/internal/service/emotion"
)

func TestServiceDisabledUsesKeywordHeuristics(t *testing.T) {
	svc, err := emotionservice.NewService(context.Background(), nil, emotionservice.Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("service must not report the LLM classifier enabled without a model")
	}

	if got := svc.Classify(context.Background(), "I'm really sad today"); got != analysis.Sadness {
		t.Fatalf("expected sadness from keyword fallback, got %s", got)
	}
	if got := svc.Classify(context.Background(), "quarterly report attached"); got != analysis.Neutral {
		t.Fatalf("expected neutral fail-closed label, got %s", got)
	}
}

func TestServiceEnabledRequiresModel(t *testing.T) {
	// Asking for the LLM classifier without a chat model degrades silently.
	svc, err := emotionservice.NewService(context.Background(), nil, emotionservice.Config{Enabled: true})
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("classifier cannot be enabled with a nil model")
	}
}
