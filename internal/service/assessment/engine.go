// Package assessment scores the guided three-question stress check and maps
// the score onto a recommendation. Everything here is pure: no I/O, no state.
package assessment

import (
	"fmt"
	"strings"

	"github.com/mounish67/mindmate-ai-bot/internal/model/resource"
)

// QuestionCount is the fixed length of the assessment.
const QuestionCount = 3

// Questions in asking order; index by the number of answers collected so far.
var Questions = []string{
	"Do you often feel overwhelmed or tense? (Often / Sometimes / Rarely)",
	"Do you have trouble relaxing or sleeping? (Often / Sometimes / Rarely)",
	"Do you find it hard to focus on tasks? (Often / Sometimes / Rarely)",
}

// Level buckets an assessment score.
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
)

// Recommendation is the outcome of a finished assessment.
type Recommendation struct {
	Level            Level     `json:"level"`
	Advice           string    `json:"advice"`
	Actions          [3]string `json:"actions"`
	ResourceCategory string    `json:"resourceCategory"`
}

// Score sums the intensity of each answer: "often" counts 3, "sometimes" 2,
// "rarely" 1, anything else 0. Matching is case-insensitive substring, so
// "quite often, yes" still counts as often.
func Score(answers []string) int {
	total := 0
	for _, answer := range answers {
		normalized := strings.ToLower(answer)
		switch {
		case strings.Contains(normalized, "often"):
			total += 3
		case strings.Contains(normalized, "sometimes"):
			total += 2
		case strings.Contains(normalized, "rarely"):
			total += 1
		}
	}
	return total
}

// Recommend maps a score in [0,9] onto a level with fixed advice and actions.
// Boundaries: score >= 7 is High, 4 <= score < 7 is Moderate, below 4 is Low.
func Recommend(score int) Recommendation {
	switch {
	case score >= 7:
		return Recommendation{
			Level: LevelHigh,
			Advice: "Your stress seems high. Try a 3-5 minute breathing routine " +
				"(inhale 4s, hold 4s, exhale 6s), a short walk, or journaling. " +
				"If you feel unsafe, reach local help (112 in India) or talk to someone you trust.",
			Actions:          defaultActions,
			ResourceCategory: resource.CategoryHighStress,
		}
	case score >= 4:
		return Recommendation{
			Level: LevelModerate,
			Advice: "There are signs of stress. Small routines help: a 5-minute stretch, " +
				"10 deep breaths, and finishing a small task to regain momentum.",
			Actions:          defaultActions,
			ResourceCategory: resource.CategoryModerateStress,
		}
	default:
		return Recommendation{
			Level:            LevelLow,
			Advice:           "Good job, stress looks manageable. Keep up your sleep, hydration, and positivity.",
			Actions:          defaultActions,
			ResourceCategory: resource.CategoryLowStress,
		}
	}
}

var defaultActions = [3]string{
	"Take a 5-minute breathing break",
	"Drink water and stretch",
	"Write one positive thing you did today",
}

// FormatResult renders a finished recommendation plus its resource listing
// into a single reply body.
func (r Recommendation) FormatResult(resources []resource.Resource) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Stress level: %s\n%s\n", r.Level, r.Advice)
	fmt.Fprintf(&builder, "Suggested actions: - %s - %s - %s", r.Actions[0], r.Actions[1], r.Actions[2])

	if len(resources) > 0 {
		builder.WriteString("\n\nHere are some things that might help:\n")
		for _, item := range resources {
			fmt.Fprintf(&builder, "- [%s](%s) (%s)\n", item.Title, item.Link, item.Type)
		}
	}
	return builder.String()
}
