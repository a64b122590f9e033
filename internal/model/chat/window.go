package chat

import (
	"strings"
	"time"
)

// DefaultWindowCapacity bounds how many turns a session remembers.
const DefaultWindowCapacity = 8

// Turn records a single utterance inside the context window.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Window is a bounded FIFO log of recent conversation turns. The zero value
// uses DefaultWindowCapacity.
type Window struct {
	Capacity int    `json:"capacity,omitempty"`
	Turns    []Turn `json:"turns"`
}

func (w *Window) capacity() int {
	if w.Capacity > 0 {
		return w.Capacity
	}
	return DefaultWindowCapacity
}

// Append pushes one turn, evicting the oldest entries once capacity is hit.
func (w *Window) Append(speaker, text string) {
	w.Turns = append(w.Turns, Turn{Speaker: speaker, Text: text, CreatedAt: time.Now().UTC()})
	if over := len(w.Turns) - w.capacity(); over > 0 {
		w.Turns = append(w.Turns[:0], w.Turns[over:]...)
	}
}

// Recent returns up to limit of the newest turns in chronological order.
func (w *Window) Recent(limit int) []Turn {
	if limit <= 0 || len(w.Turns) == 0 {
		return nil
	}
	start := len(w.Turns) - limit
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(w.Turns)-start)
	copy(out, w.Turns[start:])
	return out
}

// Render joins the newest turns into a snippet suitable for provider prompts.
func (w *Window) Render(limit int) string {
	return RenderTurns(w.Recent(limit))
}

// RenderTurns joins turns into "speaker: text" lines in chronological order.
func RenderTurns(turns []Turn) string {
	var builder strings.Builder
	for i, turn := range turns {
		content := strings.TrimSpace(turn.Text)
		if content == "" {
			continue
		}
		builder.WriteString(turn.Speaker)
		builder.WriteString(": ")
		builder.WriteString(content)
		if i < len(turns)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// Clear drops every remembered turn while keeping the configured capacity.
func (w *Window) Clear() {
	w.Turns = nil
}
