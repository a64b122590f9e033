// Package dialogue drives the per-session conversation state machine: it
// routes each inbound utterance through an ordered rule table and produces
// exactly one reply, whatever the providers underneath are doing.
package dialogue

import (
	"context"
	"log"
	"strings"

	"github.com/mounish67/mindmate-ai-bot/internal/analysis/emotion"
	"github.com/mounish67/mindmate-ai-bot/internal/model/chat"
	"github.com/mounish67/mindmate-ai-bot/internal/model/resource"
	"github.com/mounish67/mindmate-ai-bot/internal/service/ai"
	"github.com/mounish67/mindmate-ai-bot/internal/service/assessment"
	"github.com/mounish67/mindmate-ai-bot/internal/service/session"
)

const (
	speakerUser      = "user"
	speakerAssistant = "assistant"
)

// ReplyGenerator produces free-chat replies. It never fails: the provider
// chain absorbs every backend error behind its fallback table.
type ReplyGenerator interface {
	Reply(ctx context.Context, req ai.Request) string
}

// Classifier maps raw text to an emotion label, failing closed to neutral.
type Classifier interface {
	Classify(ctx context.Context, text string) emotion.Label
}

// Service is the conversational orchestration engine.
type Service struct {
	store        *session.Store
	classifier   Classifier
	generator    ReplyGenerator
	resources    resource.Store
	historyLimit int
	table        []rule
}

// NewService wires the dialogue engine to its collaborators.
func NewService(store *session.Store, classifier Classifier, generator ReplyGenerator, resources resource.Store, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = 6
	}
	svc := &Service{
		store:        store,
		classifier:   classifier,
		generator:    generator,
		resources:    resources,
		historyLimit: historyLimit,
	}
	svc.table = svc.rules()
	return svc
}

// HandleMessage processes one inbound utterance for an identity and returns
// the reply to render. The whole turn runs under the store's per-identity
// mutation, so interleaved requests for the same identity cannot corrupt the
// assessment state.
func (s *Service) HandleMessage(ctx context.Context, identity, text string) (chat.Reply, error) {
	var reply chat.Reply
	err := s.store.Touch(ctx, identity, func(sess *chat.Session) error {
		reply = s.route(ctx, sess, strings.TrimSpace(text))
		return nil
	})
	if err != nil {
		return chat.Reply{}, err
	}
	return reply, nil
}

func (s *Service) route(ctx context.Context, sess *chat.Session, text string) chat.Reply {
	if text == "" {
		return chat.Reply{Reply: "Could you say that again?", Type: chat.TypeChat}
	}

	in := input{
		text:       text,
		lower:      strings.ToLower(text),
		wasOffered: sess.OfferedAssessment,
	}
	// The offer is single-turn: whatever this turn does, it is no longer
	// pending afterwards.
	sess.OfferedAssessment = false

	sess.Context.Append(speakerUser, text)

	for _, r := range s.table {
		if !r.matches(sess, in) {
			continue
		}
		reply := r.handle(ctx, sess, in)
		if r.name != "reset" {
			sess.Context.Append(speakerAssistant, reply.Reply)
		}
		log.Printf("[dialogue] session=%s rule=%s type=%s", sess.ID, r.name, reply.Type)
		return reply
	}

	// The table ends with an unguarded rule, so this is unreachable.
	return chat.Reply{Reply: "I'm here. What's been on your mind today?", Type: chat.TypeChat}
}

func (s *Service) handleReset(_ context.Context, sess *chat.Session, _ input) chat.Reply {
	s.store.Renew(sess)
	return chat.Reply{
		Reply: "Okay, let's start fresh. How are you feeling right now?",
		Type:  chat.TypeChat,
	}
}

func (s *Service) handleCrisis(_ context.Context, _ *chat.Session, _ input) chat.Reply {
	return chat.Reply{
		Reply: "I'm really glad you told me. Your safety matters. " +
			"If you're in immediate danger, please call your local emergency number (112 in India) " +
			"or reach out to a trusted person right now. You're not alone.",
		Type: chat.TypeChat,
	}
}

func (s *Service) handleAssessmentAnswer(_ context.Context, sess *chat.Session, in input) chat.Reply {
	sess.Answers = append(sess.Answers, in.text)
	if len(sess.Answers) < assessment.QuestionCount {
		return chat.Reply{Reply: assessment.Questions[len(sess.Answers)], Type: chat.TypeStress}
	}

	score := assessment.Score(sess.Answers)
	rec := assessment.Recommend(score)
	sess.EndAssessment()

	return chat.Reply{
		Reply: rec.FormatResult(s.resources.Lookup(rec.ResourceCategory)),
		Type:  chat.TypeResult,
	}
}

func (s *Service) handleRelaxation(_ context.Context, _ *chat.Session, _ input) chat.Reply {
	var builder strings.Builder
	builder.WriteString("Here are some relaxation techniques and resources:\n\n")
	for _, item := range s.resources.Lookup(resource.CategoryRelaxation) {
		builder.WriteString("- [")
		builder.WriteString(item.Title)
		builder.WriteString("](")
		builder.WriteString(item.Link)
		builder.WriteString(") (")
		builder.WriteString(item.Type)
		builder.WriteString(")\n")
	}
	return chat.Reply{Reply: builder.String(), Type: chat.TypeResource}
}

func (s *Service) handleAcceptOffer(_ context.Context, sess *chat.Session, _ input) chat.Reply {
	sess.BeginAssessment()
	return chat.Reply{Reply: assessment.Questions[0], Type: chat.TypeStress}
}

func (s *Service) handleOfferAssessment(_ context.Context, sess *chat.Session, _ input) chat.Reply {
	sess.OfferedAssessment = true
	return chat.Reply{
		Reply: "It sounds tough. Want to take a quick 3-question stress check?",
		Type:  chat.TypeOfferTest,
	}
}

func (s *Service) handleGenerate(ctx context.Context, sess *chat.Session, in input) chat.Reply {
	label := emotion.Neutral
	if s.classifier != nil {
		label = s.classifier.Classify(ctx, in.text)
	}

	// Exclude the turn we just appended; the provider prompt already carries
	// the current utterance separately.
	turns := sess.Context.Recent(s.historyLimit + 1)
	if len(turns) > 0 {
		turns = turns[:len(turns)-1]
	}
	snippet := chat.RenderTurns(turns)

	text := s.generator.Reply(ctx, ai.Request{Text: in.text, Emotion: label, Context: snippet})
	return chat.Reply{Reply: text, Type: chat.TypeChat}
}
