package dialogue_test

import (
	"context"
	"strings"
	"testing"

	emotion "github.com/mounish67/mindmate-ai-bot/internal/analysis/emotion"
	"github.com/mounish67/mindmate-ai-bot/internal/model/chat"
	"github.com/mounish67/mindmate-ai-bot/internal/model/resource"
	"github.com/mounish67/mindmate-ai-bot/internal/service/ai"
	"github.com/mounish67/mindmate-ai-bot/internal/service/dialogue"
	"github.com/mounish67/mindmate-ai-bot/internal/service/session"
)

type stubGenerator struct {
	reply    string
	requests []ai.Request
}

func (g *stubGenerator) Reply(_ context.Context, req ai.Request) string {
	g.requests = append(g.requests, req)
	return g.reply
}

type stubClassifier struct{}

func (stubClassifier) Classify(_ context.Context, text string) emotion.Label {
	return emotion.Analyze(text)
}

func newTestService() (*dialogue.Service, *session.Store, *stubGenerator) {
	store := session.NewStore(8)
	gen := &stubGenerator{reply: "generated reply"}
	svc := dialogue.NewService(store, stubClassifier{}, gen, resource.NewMemoryStore(resource.Seed()), 6)
	return svc, store, gen
}

func send(t *testing.T, svc *dialogue.Service, identity, text string) chat.Reply {
	t.Helper()
	reply, err := svc.HandleMessage(context.Background(), identity, text)
	if err != nil {
		t.Fatalf("HandleMessage(%q) err: %v", text, err)
	}
	return reply
}

func TestEmptyMessageAsksAgain(t *testing.T) {
	svc, _, _ := newTestService()
	reply := send(t, svc, "u1", "   ")
	if reply.Type != chat.TypeChat || !strings.Contains(reply.Reply, "say that again") {
		t.Fatalf("unexpected reply for empty input: %+v", reply)
	}
}

func TestAssessmentEndToEnd(t *testing.T) {
	svc, _, _ := newTestService()

	reply := send(t, svc, "u1", "I feel stressed")
	if reply.Type != chat.TypeOfferTest {
		t.Fatalf("expected offer_test, got %s", reply.Type)
	}

	reply = send(t, svc, "u1", "yes")
	if reply.Type != chat.TypeStress {
		t.Fatalf("expected first stress question, got %s", reply.Type)
	}

	reply = send(t, svc, "u1", "often")
	if reply.Type != chat.TypeStress {
		t.Fatalf("expected second stress question, got %s", reply.Type)
	}
	reply = send(t, svc, "u1", "sometimes")
	if reply.Type != chat.TypeStress {
		t.Fatalf("expected third stress question, got %s", reply.Type)
	}

	reply = send(t, svc, "u1", "rarely")
	if reply.Type != chat.TypeResult {
		t.Fatalf("expected result, got %s", reply.Type)
	}
	if !strings.Contains(reply.Reply, "Moderate") {
		t.Fatalf("score 6 must map to Moderate, got: %s", reply.Reply)
	}
}

func TestAssessmentLeavesStageClean(t *testing.T) {
	svc, store, _ := newTestService()

	send(t, svc, "u1", "I feel stressed")
	send(t, svc, "u1", "yes")
	send(t, svc, "u1", "often")
	send(t, svc, "u1", "often")
	send(t, svc, "u1", "often")

	sess, _ := store.Resolve(context.Background(), "u1")
	if sess.Stage != chat.StageIdle || len(sess.Answers) != 0 {
		t.Fatalf("assessment completion must reset stage, got stage=%s answers=%d", sess.Stage, len(sess.Answers))
	}
}

func TestCrisisOverridesAssessmentInProgress(t *testing.T) {
	svc, store, _ := newTestService()

	send(t, svc, "u1", "I feel stressed")
	send(t, svc, "u1", "yes")
	send(t, svc, "u1", "often")

	reply := send(t, svc, "u1", "I want to hurt myself often")
	if !strings.Contains(reply.Reply, "safety matters") {
		t.Fatalf("crisis phrase must yield the safety reply, got: %s", reply.Reply)
	}
	if reply.Type == chat.TypeStress {
		t.Fatal("crisis phrase must never be absorbed as an assessment answer")
	}

	sess, _ := store.Resolve(context.Background(), "u1")
	if len(sess.Answers) != 1 {
		t.Fatalf("crisis turn must not be recorded as an answer, got %d answers", len(sess.Answers))
	}
}

func TestResetClearsEverything(t *testing.T) {
	svc, store, _ := newTestService()

	send(t, svc, "u1", "I feel stressed")
	send(t, svc, "u1", "yes")
	send(t, svc, "u1", "often")
	before, _ := store.Resolve(context.Background(), "u1")

	reply := send(t, svc, "u1", "please reset")
	if reply.Type != chat.TypeChat {
		t.Fatalf("expected chat acknowledgement, got %s", reply.Type)
	}

	sess, _ := store.Resolve(context.Background(), "u1")
	if sess.ID == before.ID {
		t.Fatal("reset must allocate a fresh session")
	}
	if sess.Stage != chat.StageIdle || len(sess.Answers) != 0 || sess.OfferedAssessment {
		t.Fatal("reset must restore defaults")
	}
	if len(sess.Context.Turns) != 0 {
		t.Fatal("reset must clear the context window")
	}
}

func TestResetPreemptsAcceptance(t *testing.T) {
	svc, _, _ := newTestService()

	send(t, svc, "u1", "I feel stressed")
	// "start over" contains the acceptance keyword "start"; the reset rule
	// must win because it is evaluated first.
	reply := send(t, svc, "u1", "start over")
	if reply.Type != chat.TypeChat {
		t.Fatalf("reset must pre-empt acceptance, got %s", reply.Type)
	}
}

func TestOfferExpiresAfterOneTurn(t *testing.T) {
	svc, _, gen := newTestService()

	reply := send(t, svc, "u1", "I feel stressed")
	if reply.Type != chat.TypeOfferTest {
		t.Fatalf("expected offer, got %s", reply.Type)
	}

	// A turn that ignores the offer consumes it.
	reply = send(t, svc, "u1", "tell me about your hobbies")
	if reply.Type != chat.TypeChat {
		t.Fatalf("expected plain chat, got %s", reply.Type)
	}

	// "yes" one turn later must no longer start the assessment.
	reply = send(t, svc, "u1", "yes")
	if reply.Type == chat.TypeStress {
		t.Fatal("expired offer must not start the assessment")
	}
	if len(gen.requests) == 0 {
		t.Fatal("expected the stale acceptance to reach the generator")
	}
}

func TestRelaxationReturnsResourcesWithoutStageChange(t *testing.T) {
	svc, store, _ := newTestService()

	reply := send(t, svc, "u1", "can you help me relax?")
	if reply.Type != chat.TypeResource {
		t.Fatalf("expected resource listing, got %s", reply.Type)
	}
	if !strings.Contains(reply.Reply, "relaxation") && !strings.Contains(reply.Reply, "Relaxation") {
		t.Fatalf("expected relaxation listing, got: %s", reply.Reply)
	}

	sess, _ := store.Resolve(context.Background(), "u1")
	if sess.Stage != chat.StageIdle {
		t.Fatal("resource request must not change stage")
	}
}

func TestFallbackCarriesEmotionAndContext(t *testing.T) {
	svc, _, gen := newTestService()

	send(t, svc, "u1", "what should I cook tonight?")
	reply := send(t, svc, "u1", "I am so happy with how it went")

	if reply.Type != chat.TypeChat || reply.Reply != "generated reply" {
		t.Fatalf("unexpected generated reply: %+v", reply)
	}
	if len(gen.requests) != 2 {
		t.Fatalf("expected 2 generator calls, got %d", len(gen.requests))
	}

	last := gen.requests[1]
	if last.Emotion != emotion.Joy {
		t.Fatalf("expected joy label, got %s", last.Emotion)
	}
	if !strings.Contains(last.Context, "what should I cook tonight?") {
		t.Fatalf("context snippet missing prior turn: %q", last.Context)
	}
	if strings.Contains(last.Context, "I am so happy with how it went") {
		t.Fatalf("context snippet must not duplicate the current utterance: %q", last.Context)
	}
}

func TestContextWindowTracksTurns(t *testing.T) {
	svc, store, _ := newTestService()

	send(t, svc, "u1", "hello there")
	sess, _ := store.Resolve(context.Background(), "u1")

	if len(sess.Context.Turns) != 2 {
		t.Fatalf("expected user+assistant turns recorded, got %d", len(sess.Context.Turns))
	}
	if sess.Context.Turns[0].Speaker != "user" || sess.Context.Turns[1].Speaker != "assistant" {
		t.Fatalf("unexpected speakers: %+v", sess.Context.Turns)
	}
}
