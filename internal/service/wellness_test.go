package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/errors"
)

func TestWellnessService_CheckIn_ClampsAndFilters(t *testing.T) {
	svc, _ := testWellnessService(t)
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	checkIn, err := svc.CheckIn(context.Background(), CheckInRequest{
		Mood:     15,
		Stress:   -2,
		Energy:   7,
		Emotions: []string{"calm", "ebullient", "grateful"},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, checkIn.Mood)
	assert.Equal(t, 1, checkIn.Stress)
	assert.Equal(t, 7, checkIn.Energy)
	assert.Equal(t, []string{"calm", "grateful"}, checkIn.Emotions, "unknown tags dropped, order kept")
	assert.Equal(t, now, checkIn.Date, "date defaults to today")

	// round(((10 + 7 + (11-1)) / 3) * 10) = 90
	assert.Equal(t, 90, checkIn.WellnessScore)
}

func TestWellnessService_CheckIn_SecondSameDayWins(t *testing.T) {
	svc, s := testWellnessService(t)
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	first, err := svc.CheckIn(context.Background(), CheckInRequest{Mood: 5, Stress: 5, Energy: 5})
	require.NoError(t, err)

	svc.now = fixedClock(now.Add(8 * time.Hour))
	second, err := svc.CheckIn(context.Background(), CheckInRequest{Mood: 8, Stress: 2, Energy: 9})
	require.NoError(t, err)

	checkIns := s.ListCheckIns()
	require.Len(t, checkIns, 1)
	assert.Equal(t, 8, checkIns[0].Mood)

	// The day's record keeps its identity across upserts.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestWellnessService_TodayCheckIn(t *testing.T) {
	svc, _ := testWellnessService(t)
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	_, err := svc.TodayCheckIn(context.Background())
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = svc.CheckIn(context.Background(), CheckInRequest{Mood: 6, Stress: 4, Energy: 6})
	require.NoError(t, err)

	today, err := svc.TodayCheckIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, today.Mood)
}

func TestWellnessService_Streak(t *testing.T) {
	svc, s := testWellnessService(t)
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	for i := 0; i < 4; i++ {
		day := now.AddDate(0, 0, -i)
		s.UpsertCheckIn(domain.WellnessCheckIn{
			ID: "wel-" + domain.DayKey(day), Date: day,
			Mood: 5, Stress: 5, Energy: 5, WellnessScore: 53,
		})
	}

	assert.Equal(t, Streak{Current: 4, Longest: 4}, svc.Streak(context.Background()))
}

func TestWellnessService_Analytics(t *testing.T) {
	svc, s := testWellnessService(t)
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	good := now.AddDate(0, 0, -1)
	bad := now.AddDate(0, 0, -2)
	s.UpsertCheckIn(domain.WellnessCheckIn{
		ID: "wel-good", Date: good, Mood: 8, Stress: 2, Energy: 9,
		WellnessScore: 87, Emotions: []string{"energized", "calm"},
	})
	s.UpsertCheckIn(domain.WellnessCheckIn{
		ID: "wel-bad", Date: bad, Mood: 2, Stress: 9, Energy: 3,
		WellnessScore: 23, Emotions: []string{"stressed", "calm"},
	})
	// Outside the window: ignored.
	s.UpsertCheckIn(domain.WellnessCheckIn{
		ID: "wel-old", Date: now.AddDate(0, 0, -30), Mood: 10, Stress: 1, Energy: 10,
		WellnessScore: 100,
	})

	analytics, err := svc.Analytics(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, analytics.CheckInCount)
	assert.Equal(t, float64(5), analytics.AverageMood)
	assert.Equal(t, float64(55), analytics.AverageScore)
	assert.Equal(t, domain.DayKey(good), analytics.BestDay)
	assert.Equal(t, domain.DayKey(bad), analytics.WorstDay)

	// Emotion shares over all tags in the window.
	require.Len(t, analytics.Emotions, 3)
	assert.Equal(t, WellnessEmotionCount{Emotion: "calm", Count: 2, Percentage: 50}, analytics.Emotions[0])

	// Series is date ordered.
	require.Len(t, analytics.TimeSeries, 2)
	assert.Equal(t, domain.DayKey(bad), analytics.TimeSeries[0].Date)
	assert.Equal(t, 23, analytics.TimeSeries[0].Score)
}

func TestWellnessService_Analytics_EmptyAndInvalidWindow(t *testing.T) {
	svc, _ := testWellnessService(t)
	svc.now = fixedClock(time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC))

	analytics, err := svc.Analytics(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, analytics.CheckInCount)
	assert.Zero(t, analytics.AverageScore)
	assert.Empty(t, analytics.BestDay)

	_, err = svc.Analytics(context.Background(), 0)
	assert.ErrorIs(t, err, errors.ErrValidation)
}
