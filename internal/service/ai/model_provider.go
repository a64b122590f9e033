package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mounish67/mindmate-ai-bot/internal/config"
)

const systemPrompt = "You are MindMate, a warm, youth-focused mental wellness companion. " +
	"Respond in 1-3 short sentences, be empathetic and validating, " +
	"suggest small helpful actions (breathing, reflection, hydration, grounding), " +
	"and end with a gentle follow-up question. " +
	"Avoid medical advice or diagnoses. Keep the tone supportive and safe."

const userPrompt = "Detected emotion: {emotion}.\nRecent conversation:\n{history}\n\nUser said: {text}\nRespond now."

// ModelProvider adapts one Ark-backed chat model to the Provider contract.
// The eino chain is compiled lazily on first use so that an unconfigured
// provider never touches the network.
type ModelProvider struct {
	cfg       config.AIConfig
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewModelProvider builds a provider from its endpoint configuration.
func NewModelProvider(ctx context.Context, cfg config.AIConfig) (*ModelProvider, error) {
	p := &ModelProvider{cfg: cfg}
	if !cfg.Enabled() {
		return p, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model for %s: %w", cfg.Name, err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain for %s: %w", cfg.Name, err)
	}

	p.chatModel = chatModel
	p.chain = runnable
	return p, nil
}

// ChatModel returns the underlying chat model, nil when unconfigured. The
// emotion classifier reuses it instead of opening a second client.
func (p *ModelProvider) ChatModel() model.ChatModel {
	return p.chatModel
}

// Name identifies the provider in logs.
func (p *ModelProvider) Name() string {
	return p.cfg.Name
}

// Ready reports whether credentials and a model were configured.
func (p *ModelProvider) Ready() bool {
	return p.chain != nil
}

// Generate invokes the compiled chain and normalizes failures into the
// chain's typed errors.
func (p *ModelProvider) Generate(ctx context.Context, req Request) (string, error) {
	if !p.Ready() {
		return "", ErrNotConfigured
	}

	input := map[string]any{
		"emotion": string(req.Emotion),
		"history": historyOrPlaceholder(req.Context),
		"text":    req.Text,
	}

	msg, err := p.chain.Invoke(ctx, input)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", ErrMalformedResponse
	}
	return strings.TrimSpace(msg.Content), nil
}

func historyOrPlaceholder(history string) string {
	if strings.TrimSpace(history) == "" {
		return "(no prior turns)"
	}
	return history
}
