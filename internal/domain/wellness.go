package domain

import (
	"math"
	"time"
)

// WellnessCheckIn records mood, stress, and energy for one calendar day.
// There is at most one check-in per day; a second check-in on the same day
// replaces the first wholesale.
type WellnessCheckIn struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Mood, Stress and Energy are clamped to [1,10] at write time.
	Mood   int `json:"mood"`
	Stress int `json:"stress"`
	Energy int `json:"energy"`

	// Emotions holds tags from the wellness vocabulary; invalid tags are
	// dropped at write time.
	Emotions []string `json:"emotions,omitempty"`
	Notes    string   `json:"notes,omitempty"`

	// WellnessScore is derived at write time and cached, not re-derived on
	// read. Range [0,100].
	WellnessScore int `json:"wellnessScore"`
}

// ClampMetric forces a mood/stress/energy value into [1,10].
func ClampMetric(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// WellnessScore computes the composite score from already-clamped metrics:
// round(((mood + energy + (11 - stress)) / 3) * 10), clamped to [0,100].
func WellnessScore(mood, stress, energy int) int {
	score := int(math.Round((float64(mood+energy+(11-stress)) / 3.0) * 10))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// FilterWellnessEmotions drops tags outside the check-in vocabulary,
// preserving order. Unknown tags are not an error.
func FilterWellnessEmotions(tags []string) []string {
	var out []string
	for _, t := range tags {
		if KnownWellnessEmotion(t) {
			out = append(out, t)
		}
	}
	return out
}
