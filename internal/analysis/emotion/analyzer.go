package emotion

import "strings"

// Label is one of the fixed emotion labels the engine understands.
type Label string

const (
	Neutral  Label = "neutral"
	Joy      Label = "joy"
	Love     Label = "love"
	Sadness  Label = "sadness"
	Anger    Label = "anger"
	Fear     Label = "fear"
	Surprise Label = "surprise"
)

// Known reports whether the label belongs to the fixed label set.
func Known(label Label) bool {
	switch label {
	case Neutral, Joy, Love, Sadness, Anger, Fear, Surprise:
		return true
	default:
		return false
	}
}

// Parse normalizes a raw label string into a known Label.
func Parse(raw string) (Label, bool) {
	label := Label(strings.ToLower(strings.TrimSpace(raw)))
	if !Known(label) {
		return Neutral, false
	}
	return label, true
}

var keywordBuckets = map[Label][]string{
	Joy: {
		"happy", "glad", "excited", "awesome", "great day", "wonderful", "amazing",
	},
	Love: {
		"love", "care", "grateful", "thankful",
	},
	Sadness: {
		"sad", "unhappy", "depressed", "cry", "feeling low", "not good", "moody", "down",
	},
	Anger: {
		"angry", "mad", "furious", "annoyed", "frustrated",
	},
	Fear: {
		"scared", "afraid", "nervous", "worried", "anxious", "anxiety", "panic",
	},
	Surprise: {
		"shock", "wow", "unexpected", "surprised",
	},
}

// Analyze maps raw text to an emotion label by keyword lookup. It is the
// deterministic short-circuit in front of any model-backed classifier and the
// closed-fail default when that classifier is unavailable.
func Analyze(text string) Label {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Neutral
	}

	best := Neutral
	bestScore := 0
	for _, label := range bucketOrder {
		score := 0
		for _, word := range keywordBuckets[label] {
			if strings.Contains(normalized, word) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = label
		}
	}
	return best
}

// bucketOrder keeps Analyze deterministic when several buckets tie.
var bucketOrder = []Label{Sadness, Fear, Anger, Joy, Love, Surprise}
