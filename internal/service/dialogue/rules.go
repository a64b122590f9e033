package dialogue

import (
	"context"
	"strings"

	"github.com/mounish67/mindmate-ai-bot/internal/model/chat"
)

// Keyword vocabularies for the routing rules. Matching is case-insensitive
// substring; a single hit is sufficient, there is no scoring.
var (
	resetKeywords = []string{
		"restart", "reset", "start over",
	}

	// crisisKeywords must dominate every other rule, including an assessment
	// in progress. This is a hard safety invariant.
	crisisKeywords = []string{
		"suicide", "kill myself", "end my life", "self harm", "hurt myself",
	}

	relaxationKeywords = []string{
		"relaxation", "relax", "techniques", "calm", "help me relax",
		"breathing", "stress relief", "meditation", "relax guide",
	}

	// Bare "ok" is deliberately absent: as a substring it would match
	// "cook", "look", "joke".
	affirmativeKeywords = []string{
		"yes", "yeah", "sure", "okay", "ok start", "start", "begin",
		"i want to take", "take the test",
	}

	negativeMoodKeywords = []string{
		"not good", "sad", "down", "depressed", "anxious", "angry",
		"scared", "overwhelmed", "stressed",
	}
)

// input is the per-turn routing context handed to guards and handlers.
type input struct {
	text string
	// lower is the normalized text every keyword rule matches against.
	lower string
	// wasOffered records whether the previous turn proposed the assessment.
	// The live flag is cleared before routing; the offer lasts one turn.
	wasOffered bool
}

// rule is one entry of the ordered, first-match-wins routing table. A rule
// matches when its guard (if any) passes and any keyword (if any) is
// contained in the inbound text. A rule with neither always matches.
type rule struct {
	name     string
	keywords []string
	guard    func(session *chat.Session, in input) bool
	handle   func(ctx context.Context, session *chat.Session, in input) chat.Reply
}

func (r rule) matches(session *chat.Session, in input) bool {
	if r.guard != nil && !r.guard(session, in) {
		return false
	}
	if len(r.keywords) == 0 {
		return true
	}
	for _, keyword := range r.keywords {
		if strings.Contains(in.lower, keyword) {
			return true
		}
	}
	return false
}

// rules builds the routing table. Order is a deliberate contract: earlier
// rules pre-empt later ones even if both would match.
func (s *Service) rules() []rule {
	return []rule{
		{name: "reset", keywords: resetKeywords, handle: s.handleReset},
		{name: "crisis", keywords: crisisKeywords, handle: s.handleCrisis},
		{
			name: "assessment_answer",
			guard: func(session *chat.Session, _ input) bool {
				return session.Stage == chat.StageAssessment
			},
			handle: s.handleAssessmentAnswer,
		},
		{name: "relaxation", keywords: relaxationKeywords, handle: s.handleRelaxation},
		{
			name:     "accept_offer",
			keywords: affirmativeKeywords,
			guard: func(_ *chat.Session, in input) bool {
				return in.wasOffered
			},
			handle: s.handleAcceptOffer,
		},
		{name: "negative_mood", keywords: negativeMoodKeywords, handle: s.handleOfferAssessment},
		{name: "generate", handle: s.handleGenerate},
	}
}
