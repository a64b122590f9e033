package chat

import "time"

// Stage positions a session inside the guided-assessment state machine.
type Stage string

const (
	// StageIdle means free conversation; no assessment in progress.
	StageIdle Stage = "idle"
	// StageAssessment means the session is collecting assessment answers.
	StageAssessment Stage = "assessment"
)

// Session captures the transient conversational state for one identity.
// All fields are volatile; nothing survives a process restart.
type Session struct {
	ID                string    `json:"id"`
	Identity          string    `json:"identity"`
	Stage             Stage     `json:"stage"`
	Answers           []string  `json:"answers"`
	OfferedAssessment bool      `json:"offeredAssessment"`
	Context           Window    `json:"context"`
	CreatedAt         time.Time `json:"createdAt"`
}

// BeginAssessment transitions the session into answer collection.
func (s *Session) BeginAssessment() {
	s.Stage = StageAssessment
	s.Answers = nil
}

// EndAssessment returns the session to free conversation and drops answers.
func (s *Session) EndAssessment() {
	s.Stage = StageIdle
	s.Answers = nil
}
