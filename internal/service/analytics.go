package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/store"
)

// AnalyticsService derives statistics from the diary collections. Every
// method recomputes from the current store contents on each call; nothing
// is cached or incrementally maintained.
type AnalyticsService struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(s *store.Store, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// EmotionCount is one emotion histogram bucket.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// EmotionHistogram counts emotion labels across daily entries only,
// sorted by count descending.
func (s *AnalyticsService) EmotionHistogram(ctx context.Context) []EmotionCount {
	counts := make(map[string]int)
	for _, e := range s.store.ListEntries(domain.KindDaily) {
		if e.Emotion != "" {
			counts[e.Emotion]++
		}
	}

	histogram := make([]EmotionCount, 0, len(counts))
	for emotion, count := range counts {
		histogram = append(histogram, EmotionCount{Emotion: emotion, Count: count})
	}
	slices.SortFunc(histogram, func(a, b EmotionCount) int {
		if b.Count != a.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Emotion, b.Emotion)
	})
	return histogram
}

// WordCount is one word-frequency bucket.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// wordFrequencyLimit caps the word-frequency report.
const wordFrequencyLimit = 20

// WordFrequency counts words across the content of all entry kinds:
// lowercased, non-word characters stripped, words of three or fewer
// characters dropped. Returns the top 20 by count descending.
func (s *AnalyticsService) WordFrequency(ctx context.Context) []WordCount {
	counts := make(map[string]int)
	order := make(map[string]int) // first-encountered order breaks ties
	next := 0

	for _, kind := range domain.Kinds() {
		for _, e := range s.store.ListEntries(kind) {
			for _, word := range splitWords(e.Content) {
				// Characters, not bytes: a three-rune CJK word is nine
				// bytes but still a short word.
				if utf8.RuneCountInString(word) <= 3 {
					continue
				}
				if _, seen := counts[word]; !seen {
					order[word] = next
					next++
				}
				counts[word]++
			}
		}
	}

	words := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, WordCount{Word: word, Count: count})
	}
	slices.SortFunc(words, func(a, b WordCount) int {
		if b.Count != a.Count {
			return b.Count - a.Count
		}
		return order[a.Word] - order[b.Word]
	})

	if len(words) > wordFrequencyLimit {
		words = words[:wordFrequencyLimit]
	}
	return words
}

// splitWords lowercases content, maps every non-word rune to a space, and
// splits on whitespace.
func splitWords(content string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, content)
	return strings.Fields(cleaned)
}

// ActivityMood is one mood/activity correlation row.
type ActivityMood struct {
	Activity    string  `json:"activity"`
	AverageMood float64 `json:"averageMood"`
	Frequency   int     `json:"frequency"`
	Impact      string  `json:"impact"` // positive, negative, neutral
}

// MoodActivityCorrelation derives per-activity mood averages from entries
// carrying both an emotion and activities. Sorted by average mood
// descending.
func (s *AnalyticsService) MoodActivityCorrelation(ctx context.Context) []ActivityMood {
	type acc struct {
		sum   float64
		count int
	}
	byActivity := make(map[string]*acc)

	for _, kind := range domain.Kinds() {
		for _, e := range s.store.ListEntries(kind) {
			if e.Emotion == "" || len(e.Activities) == 0 {
				continue
			}
			score := domain.MoodScore(e.Emotion)
			for _, activity := range e.Activities {
				a := byActivity[activity]
				if a == nil {
					a = &acc{}
					byActivity[activity] = a
				}
				a.sum += score
				a.count++
			}
		}
	}

	rows := make([]ActivityMood, 0, len(byActivity))
	for activity, a := range byActivity {
		avg := a.sum / float64(a.count)
		impact := "neutral"
		if avg > 3 {
			impact = "positive"
		} else if avg < 3 {
			impact = "negative"
		}
		rows = append(rows, ActivityMood{
			Activity:    activity,
			AverageMood: avg,
			Frequency:   a.count,
			Impact:      impact,
		})
	}
	slices.SortFunc(rows, func(a, b ActivityMood) int {
		switch {
		case b.AverageMood > a.AverageMood:
			return 1
		case b.AverageMood < a.AverageMood:
			return -1
		default:
			return strings.Compare(a.Activity, b.Activity)
		}
	})
	return rows
}

// MoodBucket is one time-pattern bucket. Count is 0 for empty buckets;
// callers must check it before trusting AverageMood.
type MoodBucket struct {
	AverageMood float64 `json:"averageMood"`
	Count       int     `json:"count"`
}

// TimePatterns buckets mood by hour of day and day of week.
type TimePatterns struct {
	// DailyAverage indexes by creation hour (0-23), daily entries only.
	DailyAverage [24]MoodBucket `json:"dailyAverage"`
	// WeeklyAverage indexes by weekday (0 = Sunday), all entry kinds.
	WeeklyAverage [7]MoodBucket `json:"weeklyAverage"`
}

// MoodTimePatterns derives intraday and weekly mood patterns.
func (s *AnalyticsService) MoodTimePatterns(ctx context.Context) TimePatterns {
	var hourSum [24]float64
	var hourCount [24]int
	var daySum [7]float64
	var dayCount [7]int

	for _, kind := range domain.Kinds() {
		for _, e := range s.store.ListEntries(kind) {
			if e.Emotion == "" {
				continue
			}
			score := domain.MoodScore(e.Emotion)
			if kind == domain.KindDaily {
				h := e.CreatedAt.Hour()
				hourSum[h] += score
				hourCount[h]++
			}
			wd := int(e.Date.Weekday())
			daySum[wd] += score
			dayCount[wd]++
		}
	}

	var patterns TimePatterns
	for h := range patterns.DailyAverage {
		if hourCount[h] > 0 {
			patterns.DailyAverage[h] = MoodBucket{AverageMood: hourSum[h] / float64(hourCount[h]), Count: hourCount[h]}
		}
	}
	for d := range patterns.WeeklyAverage {
		if dayCount[d] > 0 {
			patterns.WeeklyAverage[d] = MoodBucket{AverageMood: daySum[d] / float64(dayCount[d]), Count: dayCount[d]}
		}
	}
	return patterns
}

// WritingInsights summarizes writing volume across all entry kinds.
type WritingInsights struct {
	TotalWords         int     `json:"totalWords"`
	TotalCharacters    int     `json:"totalCharacters"`
	AverageWords       float64 `json:"averageWords"`
	AverageCharacters  float64 `json:"averageCharacters"`
	LongestEntryWords  int     `json:"longestEntryWords"`
	ShortestEntryWords int     `json:"shortestEntryWords"`
	ActiveDays         int     `json:"activeDays"`
}

// WritingInsights computes totals and averages over entries with non-empty
// content. Averages use the non-empty entry count as denominator, floored
// at 1 so empty collections yield zeros rather than dividing by zero.
func (s *AnalyticsService) WritingInsights(ctx context.Context) WritingInsights {
	var insights WritingInsights
	nonEmpty := 0
	shortest := -1
	activeDays := make(map[string]bool)

	for _, kind := range domain.Kinds() {
		for _, e := range s.store.ListEntries(kind) {
			if strings.TrimSpace(e.Content) == "" {
				continue
			}
			nonEmpty++
			words := len(strings.Fields(e.Content))
			insights.TotalWords += words
			insights.TotalCharacters += len([]rune(e.Content))
			if words > insights.LongestEntryWords {
				insights.LongestEntryWords = words
			}
			if shortest < 0 || words < shortest {
				shortest = words
			}
			activeDays[domain.DayKey(e.Date)] = true
		}
	}

	denominator := max(nonEmpty, 1)
	insights.AverageWords = float64(insights.TotalWords) / float64(denominator)
	insights.AverageCharacters = float64(insights.TotalCharacters) / float64(denominator)
	if shortest > 0 {
		insights.ShortestEntryWords = shortest
	}
	insights.ActiveDays = len(activeDays)
	return insights
}

// GoalStat is progress toward one period goal.
type GoalStat struct {
	Current    int     `json:"current"`
	Goal       int     `json:"goal"`
	Percentage float64 `json:"percentage"`
}

// GoalProgress is per-kind progress for the current calendar month.
type GoalProgress struct {
	Daily   GoalStat `json:"daily"`
	Weekly  GoalStat `json:"weekly"`
	Monthly GoalStat `json:"monthly"`
}

// GoalProgress computes entries written this month against per-kind
// targets: days in the month for daily, weeks in the month for weekly, one
// for monthly. Percentages are not clamped: duplicate entries for one
// period push past 100.
func (s *AnalyticsService) GoalProgress(ctx context.Context) GoalProgress {
	now := s.now()
	monthStart := domain.PeriodStart(domain.KindMonthly, now)
	daysInMonth := monthStart.AddDate(0, 1, 0).Sub(monthStart).Hours() / 24

	goals := map[domain.EntryKind]int{
		domain.KindDaily:   int(daysInMonth),
		domain.KindWeekly:  int((daysInMonth + 6) / 7),
		domain.KindMonthly: 1,
	}

	stat := func(kind domain.EntryKind) GoalStat {
		current := 0
		for _, e := range s.store.ListEntries(kind) {
			if domain.SamePeriod(domain.KindMonthly, e.Date, now) {
				current++
			}
		}
		goal := goals[kind]
		return GoalStat{
			Current:    current,
			Goal:       goal,
			Percentage: float64(current) / float64(goal) * 100,
		}
	}

	return GoalProgress{
		Daily:   stat(domain.KindDaily),
		Weekly:  stat(domain.KindWeekly),
		Monthly: stat(domain.KindMonthly),
	}
}

// Insight is one qualitative growth message.
type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Growth insight thresholds.
const (
	insightStreakDays   = 7
	insightEmotionCount = 5
	insightTotalWords   = 10000
)

// PersonalGrowthInsights emits up to three qualitative messages derived
// from the daily streak, the dominant emotion, and total words written.
// Purely presentational; no side effects.
func (s *AnalyticsService) PersonalGrowthInsights(ctx context.Context) []Insight {
	insights := make([]Insight, 0, 3)

	streak := entryStreak(s.store, domain.KindDaily, s.now())
	if streak.Current >= insightStreakDays {
		insights = append(insights, Insight{
			Type:    "streak",
			Title:   "Consistency is building",
			Message: fmt.Sprintf("You've journaled %d days in a row. Daily reflection is becoming a habit.", streak.Current),
		})
	}

	if histogram := s.EmotionHistogram(ctx); len(histogram) > 0 && histogram[0].Count >= insightEmotionCount {
		insights = append(insights, Insight{
			Type:    "emotion",
			Title:   "A pattern in how you feel",
			Message: fmt.Sprintf("%q shows up most often in your entries (%d times). Worth a closer look at what drives it.", histogram[0].Emotion, histogram[0].Count),
		})
	}

	if writing := s.WritingInsights(ctx); writing.TotalWords >= insightTotalWords {
		insights = append(insights, Insight{
			Type:    "volume",
			Title:   "A serious body of writing",
			Message: fmt.Sprintf("You've written %d words across your journal. That's real perspective to look back on.", writing.TotalWords),
		})
	}

	return insights
}
