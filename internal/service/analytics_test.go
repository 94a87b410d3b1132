package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarityos/clarity-server/internal/domain"
)

func seedEntry(t *testing.T, s interface{ CreateEntry(domain.Entry) }, e domain.Entry) {
	t.Helper()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = e.Date
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.Date
	}
	s.CreateEntry(e)
}

func TestAnalytics_EmptyStoreIsSafe(t *testing.T) {
	svc, _ := testAnalyticsService(t)
	svc.now = fixedClock(time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	assert.Empty(t, svc.EmotionHistogram(ctx))
	assert.Empty(t, svc.WordFrequency(ctx))
	assert.Empty(t, svc.MoodActivityCorrelation(ctx))

	patterns := svc.MoodTimePatterns(ctx)
	for _, b := range patterns.DailyAverage {
		assert.Zero(t, b.Count)
	}
	for _, b := range patterns.WeeklyAverage {
		assert.Zero(t, b.Count)
	}

	writing := svc.WritingInsights(ctx)
	assert.Zero(t, writing.TotalWords)
	assert.Zero(t, writing.AverageWords, "no division by zero on empty input")

	progress := svc.GoalProgress(ctx)
	assert.Zero(t, progress.Daily.Current)
	assert.Equal(t, float64(0), progress.Daily.Percentage)

	assert.Empty(t, svc.PersonalGrowthInsights(ctx))
}

func TestAnalytics_EmotionHistogram_DailyOnly(t *testing.T) {
	svc, s := testAnalyticsService(t)
	day := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	seedEntry(t, s, domain.Entry{ID: "ent-1", Kind: domain.KindDaily, Date: day, Emotion: domain.EmotionHappy})
	seedEntry(t, s, domain.Entry{ID: "ent-2", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 1), Emotion: domain.EmotionHappy})
	seedEntry(t, s, domain.Entry{ID: "ent-3", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 2), Emotion: domain.EmotionSad})
	seedEntry(t, s, domain.Entry{ID: "ent-4", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 3)}) // no emotion
	seedEntry(t, s, domain.Entry{ID: "ent-5", Kind: domain.KindWeekly, Date: day, Emotion: domain.EmotionHappy})

	histogram := svc.EmotionHistogram(context.Background())
	require.Len(t, histogram, 2)
	assert.Equal(t, EmotionCount{Emotion: domain.EmotionHappy, Count: 2}, histogram[0])
	assert.Equal(t, EmotionCount{Emotion: domain.EmotionSad, Count: 1}, histogram[1])
}

func TestAnalytics_WordFrequency(t *testing.T) {
	svc, s := testAnalyticsService(t)
	day := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	seedEntry(t, s, domain.Entry{
		ID: "ent-1", Kind: domain.KindDaily, Date: day,
		Content: "Morning walk, then MORNING coffee. A walk helps; so do naps!",
	})
	seedEntry(t, s, domain.Entry{
		ID: "ent-2", Kind: domain.KindWeekly, Date: day,
		Content: "morning review went fine",
	})

	words := svc.WordFrequency(context.Background())
	require.NotEmpty(t, words)

	// Case folded, punctuation stripped, counted across kinds.
	assert.Equal(t, WordCount{Word: "morning", Count: 3}, words[0])

	for _, w := range words {
		assert.Greater(t, len(w.Word), 3, "short words are dropped: %q", w.Word)
	}
}

func TestAnalytics_WordFrequency_CountsCharactersNotBytes(t *testing.T) {
	svc, s := testAnalyticsService(t)
	day := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	// "日記" is two characters (six bytes) and must be dropped with the
	// other short words; "ありがとう" is five characters and kept.
	seedEntry(t, s, domain.Entry{
		ID: "ent-1", Kind: domain.KindDaily, Date: day,
		Content: "日記 ありがとう ありがとう",
	})

	words := svc.WordFrequency(context.Background())
	require.Len(t, words, 1)
	assert.Equal(t, WordCount{Word: "ありがとう", Count: 2}, words[0])
}

func TestAnalytics_WordFrequency_TopTwenty(t *testing.T) {
	svc, s := testAnalyticsService(t)
	day := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	content := ""
	for _, w := range []string{
		"alpha", "bravo", "charlie", "delta", "echoes", "foxtrot", "golfing",
		"hotel", "india", "juliet", "kilos", "limas", "mikes", "november",
		"oscar", "papas", "quebec", "romeo", "sierra", "tango", "uniform",
		"victor",
	} {
		content += w + " "
	}
	seedEntry(t, s, domain.Entry{ID: "ent-1", Kind: domain.KindDaily, Date: day, Content: content})

	assert.Len(t, svc.WordFrequency(context.Background()), 20)
}

func TestAnalytics_MoodActivityCorrelation(t *testing.T) {
	svc, s := testAnalyticsService(t)
	day := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	seedEntry(t, s, domain.Entry{
		ID: "ent-1", Kind: domain.KindDaily, Date: day,
		Emotion: domain.EmotionHappy, Activities: []string{"exercise", "reading"},
	})
	seedEntry(t, s, domain.Entry{
		ID: "ent-2", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 1),
		Emotion: domain.EmotionSad, Activities: []string{"overtime"},
	})
	seedEntry(t, s, domain.Entry{
		ID: "ent-3", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 2),
		Emotion: domain.EmotionNeutral, Activities: []string{"commute"},
	})
	// No activities: contributes nothing.
	seedEntry(t, s, domain.Entry{
		ID: "ent-4", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 3),
		Emotion: domain.EmotionHappy,
	})

	rows := svc.MoodActivityCorrelation(context.Background())
	require.Len(t, rows, 4)

	// Sorted by average mood descending.
	assert.Equal(t, "exercise", rows[0].Activity)
	assert.Equal(t, "positive", rows[0].Impact)
	assert.Equal(t, float64(5), rows[0].AverageMood)
	assert.Equal(t, 1, rows[0].Frequency)

	byActivity := make(map[string]ActivityMood)
	for _, r := range rows {
		byActivity[r.Activity] = r
	}
	assert.Equal(t, "negative", byActivity["overtime"].Impact)
	assert.Equal(t, "neutral", byActivity["commute"].Impact)
}

func TestAnalytics_MoodTimePatterns(t *testing.T) {
	svc, s := testAnalyticsService(t)

	// Tuesday morning and Tuesday evening, plus a weekly entry dated Sunday.
	tuesday := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	seedEntry(t, s, domain.Entry{
		ID: "ent-1", Kind: domain.KindDaily, Date: tuesday,
		CreatedAt: tuesday.Add(8 * time.Hour), Emotion: domain.EmotionHappy,
	})
	seedEntry(t, s, domain.Entry{
		ID: "ent-2", Kind: domain.KindDaily, Date: tuesday,
		CreatedAt: tuesday.Add(8*time.Hour + 30*time.Minute), Emotion: domain.EmotionSad,
	})
	sunday := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	seedEntry(t, s, domain.Entry{
		ID: "ent-3", Kind: domain.KindWeekly, Date: sunday,
		CreatedAt: sunday.Add(20 * time.Hour), Emotion: domain.EmotionCalm,
	})

	patterns := svc.MoodTimePatterns(context.Background())

	eight := patterns.DailyAverage[8]
	assert.Equal(t, 2, eight.Count)
	assert.Equal(t, float64(3), eight.AverageMood) // (5+1)/2

	// Hourly buckets come from daily entries only.
	assert.Zero(t, patterns.DailyAverage[20].Count)

	// Weekday buckets include all kinds. Tuesday = 2, Sunday = 0.
	assert.Equal(t, 2, patterns.WeeklyAverage[2].Count)
	assert.Equal(t, 1, patterns.WeeklyAverage[0].Count)
}

func TestAnalytics_WritingInsights(t *testing.T) {
	svc, s := testAnalyticsService(t)
	day := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

	seedEntry(t, s, domain.Entry{ID: "ent-1", Kind: domain.KindDaily, Date: day, Content: "one two three four"})
	seedEntry(t, s, domain.Entry{ID: "ent-2", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 1), Content: "five six"})
	seedEntry(t, s, domain.Entry{ID: "ent-3", Kind: domain.KindDaily, Date: day.AddDate(0, 0, 2), Content: "   "}) // blank, ignored

	insights := svc.WritingInsights(context.Background())
	assert.Equal(t, 6, insights.TotalWords)
	assert.Equal(t, float64(3), insights.AverageWords)
	assert.Equal(t, 4, insights.LongestEntryWords)
	assert.Equal(t, 2, insights.ShortestEntryWords)
	assert.Equal(t, 2, insights.ActiveDays)
}

func TestAnalytics_GoalProgress(t *testing.T) {
	svc, s := testAnalyticsService(t)
	// March 2026 has 31 days: daily goal 31, weekly goal ceil(31/7) = 5.
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	for i := 0; i < 3; i++ {
		seedEntry(t, s, domain.Entry{
			ID: "ent-d" + domain.DayKey(now.AddDate(0, 0, -i)), Kind: domain.KindDaily,
			Date: now.AddDate(0, 0, -i),
		})
	}
	seedEntry(t, s, domain.Entry{ID: "ent-w1", Kind: domain.KindWeekly, Date: now})
	seedEntry(t, s, domain.Entry{ID: "ent-m1", Kind: domain.KindMonthly, Date: now})
	seedEntry(t, s, domain.Entry{ID: "ent-m2", Kind: domain.KindMonthly, Date: now.AddDate(0, 0, 1)})
	// Outside the current month: not counted.
	seedEntry(t, s, domain.Entry{ID: "ent-old", Kind: domain.KindDaily, Date: now.AddDate(0, -1, 0)})

	progress := svc.GoalProgress(context.Background())

	assert.Equal(t, GoalStat{Current: 3, Goal: 31, Percentage: float64(3) / 31 * 100}, progress.Daily)
	assert.Equal(t, GoalStat{Current: 1, Goal: 5, Percentage: 20}, progress.Weekly)

	// Duplicate monthly entries push past 100; no clamping.
	assert.Equal(t, GoalStat{Current: 2, Goal: 1, Percentage: 200}, progress.Monthly)
}

func TestAnalytics_PersonalGrowthInsights(t *testing.T) {
	svc, s := testAnalyticsService(t)
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	// Seven consecutive daily entries tagged happy clears the streak and
	// emotion thresholds but not the word-count one.
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i)
		seedEntry(t, s, domain.Entry{
			ID: "ent-" + domain.DayKey(day), Kind: domain.KindDaily, Date: day,
			Emotion: domain.EmotionHappy, Content: "short note",
		})
	}

	insights := svc.PersonalGrowthInsights(context.Background())
	require.Len(t, insights, 2)
	assert.Equal(t, "streak", insights[0].Type)
	assert.Equal(t, "emotion", insights[1].Type)
}
