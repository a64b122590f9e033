package resource

// Resource points at one external self-help material.
type Resource struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Type  string `json:"type"`
}

// Categories the engine looks up. They mirror the recommendation levels plus
// the standalone relaxation listing.
const (
	CategoryRelaxation     = "relaxation"
	CategoryLowStress      = "low_stress"
	CategoryModerateStress = "moderate_stress"
	CategoryHighStress     = "high_stress"
)

// Seed provides the default resource catalog shipped with the service.
func Seed() map[string][]Resource {
	return map[string][]Resource{
		CategoryRelaxation: {
			{Title: "5-Minute Guided Breathing", Link: "https://www.youtube.com/watch?v=SEfs5TJZ6Nk", Type: "video"},
			{Title: "Progressive Muscle Relaxation", Link: "https://www.healthline.com/health/progressive-muscle-relaxation", Type: "article"},
			{Title: "Calm Soundscapes Playlist", Link: "https://open.spotify.com/playlist/37i9dQZF1DWZqd5JICZI0u", Type: "audio"},
		},
		CategoryLowStress: {
			{Title: "Daily Gratitude Journaling", Link: "https://positivepsychology.com/gratitude-journal/", Type: "article"},
			{Title: "Light Stretching Routine", Link: "https://www.youtube.com/watch?v=g_tea8ZNk5A", Type: "video"},
		},
		CategoryModerateStress: {
			{Title: "Box Breathing Exercise", Link: "https://www.healthline.com/health/box-breathing", Type: "article"},
			{Title: "10-Minute Mindfulness Meditation", Link: "https://www.youtube.com/watch?v=ZToicYcHIOU", Type: "video"},
			{Title: "Grounding: the 5-4-3-2-1 Technique", Link: "https://www.urmc.rochester.edu/behavioral-health-partners/bhp-blog/april-2018/5-4-3-2-1-coping-technique-for-anxiety", Type: "article"},
		},
		CategoryHighStress: {
			{Title: "Talk to a Counselor (iCall)", Link: "https://icallhelpline.org/", Type: "helpline"},
			{Title: "Crisis Support Directory", Link: "https://findahelpline.com/", Type: "helpline"},
			{Title: "Guided Body Scan for Stress", Link: "https://www.youtube.com/watch?v=ihO02wUzgkc", Type: "video"},
		},
	}
}
