// Package emotion exposes emotion classification as an injected capability.
// A model-backed classifier is optional; on any failure the service degrades
// to the keyword heuristics and never blocks routing.
package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/mounish67/mindmate-ai-bot/internal/analysis/emotion"
)

// Config controls the classifier service.
type Config struct {
	Enabled bool
}

// Service classifies user utterances. When the LLM classifier is disabled or
// misbehaves, the keyword analyzer answers instead; the keyword analyzer
// itself fails closed to neutral.
type Service struct {
	enabled    bool
	classifier compose.Runnable[map[string]any, *schema.Message]
	fallback   func(text string) analysis.Label
}

// NewService creates the classifier service. chatModel may be nil, in which
// case only the keyword heuristics run.
func NewService(ctx context.Context, chatModel model.ChatModel, cfg Config) (*Service, error) {
	svc := &Service{
		enabled:  cfg.Enabled && chatModel != nil,
		fallback: analysis.Analyze,
	}

	if !svc.enabled {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage("User said: {text}\nReturn the JSON now."),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}

	svc.classifier = runnable
	return svc, nil
}

// Enabled reports whether the model-backed classifier is active.
func (s *Service) Enabled() bool {
	return s != nil && s.enabled && s.classifier != nil
}

// Classify returns the emotion label for a user utterance.
func (s *Service) Classify(ctx context.Context, text string) analysis.Label {
	// Keyword hits are cheap and correct short/ambiguous inputs the model
	// tends to misread, so they short-circuit the model call.
	if label := s.fallback(text); label != analysis.Neutral {
		return label
	}

	if !s.Enabled() {
		return analysis.Neutral
	}

	msg, err := s.classifier.Invoke(ctx, map[string]any{"text": strings.TrimSpace(text)})
	if err != nil {
		log.Printf("[emotion] classifier invoke failed, using neutral: %v", err)
		return analysis.Neutral
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return analysis.Neutral
	}

	payload, err := parseClassifierOutput(msg.Content)
	if err != nil {
		log.Printf("[emotion] classifier output parse failed, using neutral: %v", err)
		return analysis.Neutral
	}

	label, ok := analysis.Parse(payload.Emotion)
	if !ok {
		return analysis.Neutral
	}
	return label
}

// parseClassifierOutput extracts the JSON object from the model reply, which
// may be wrapped in prose or code fences.
func parseClassifierOutput(content string) (*classifierPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type classifierPayload struct {
	Emotion    string  `json:"emotion"`
	Confidence float32 `json:"confidence"`
}

const classifierSystemPrompt = "You are an emotion analyst. Read the user's message and label its " +
	"dominant emotion. Reply with a single JSON object with two fields: " +
	"emotion (one of neutral/joy/love/sadness/anger/fear/surprise) and " +
	"confidence (a number between 0 and 1). Output nothing else."
