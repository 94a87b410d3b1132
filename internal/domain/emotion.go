package domain

// Emotion labels entries can carry. The set is closed: analytics bucket by
// these labels and the mood score table below maps them onto a 1-5 scale.
const (
	EmotionHappy      = "happy"
	EmotionExcited    = "excited"
	EmotionGrateful   = "grateful"
	EmotionCalm       = "calm"
	EmotionContent    = "content"
	EmotionNeutral    = "neutral"
	EmotionTired      = "tired"
	EmotionAnxious    = "anxious"
	EmotionStressed   = "stressed"
	EmotionSad        = "sad"
	EmotionAngry      = "angry"
	EmotionFrustrated = "frustrated"
)

// moodScores maps emotion labels to a numeric mood value used by the
// mood/activity correlation and time-pattern analytics.
var moodScores = map[string]float64{
	EmotionHappy:      5,
	EmotionExcited:    5,
	EmotionGrateful:   4,
	EmotionCalm:       4,
	EmotionContent:    4,
	EmotionNeutral:    3,
	EmotionTired:      2,
	EmotionAnxious:    2,
	EmotionStressed:   2,
	EmotionSad:        1,
	EmotionAngry:      1,
	EmotionFrustrated: 1,
}

// neutralMoodScore is used for unlisted or missing emotions.
const neutralMoodScore = 3

// MoodScore returns the numeric mood value for an emotion label.
// Unknown labels score neutral rather than being rejected.
func MoodScore(emotion string) float64 {
	if s, ok := moodScores[emotion]; ok {
		return s
	}
	return neutralMoodScore
}

// KnownEmotion reports whether the label belongs to the diary vocabulary.
func KnownEmotion(emotion string) bool {
	_, ok := moodScores[emotion]
	return ok
}

// WellnessEmotions is the tag vocabulary for wellness check-ins. Tags
// outside this set are silently dropped at write time.
var WellnessEmotions = []string{
	"happy",
	"calm",
	"energized",
	"motivated",
	"grateful",
	"anxious",
	"stressed",
	"tired",
	"sad",
	"overwhelmed",
}

// KnownWellnessEmotion reports whether the tag belongs to the check-in
// vocabulary.
func KnownWellnessEmotion(tag string) bool {
	for _, e := range WellnessEmotions {
		if e == tag {
			return true
		}
	}
	return false
}
