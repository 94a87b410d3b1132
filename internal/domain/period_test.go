package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodStart_Daily(t *testing.T) {
	ts := time.Date(2026, time.March, 14, 22, 15, 0, 0, time.UTC)
	assert.Equal(t, date(2026, time.March, 14), PeriodStart(KindDaily, ts))
}

func TestPeriodStart_Weekly_MondayStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2026, time.March, 9), date(2026, time.March, 9)},
		{"sunday maps to previous monday", date(2026, time.March, 15), date(2026, time.March, 9)},
		{"wednesday maps back", time.Date(2026, time.March, 11, 13, 0, 0, 0, time.UTC), date(2026, time.March, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodStart(KindWeekly, tt.in))
		})
	}
}

func TestPeriodStart_Monthly(t *testing.T) {
	ts := time.Date(2026, time.February, 28, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2026, time.February, 1), PeriodStart(KindMonthly, ts))
}

func TestSamePeriod(t *testing.T) {
	assert.True(t, SamePeriod(KindDaily, date(2026, time.March, 14), time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)))
	assert.False(t, SamePeriod(KindDaily, date(2026, time.March, 14), date(2026, time.March, 15)))
	assert.True(t, SamePeriod(KindWeekly, date(2026, time.March, 9), date(2026, time.March, 15)))
	assert.False(t, SamePeriod(KindWeekly, date(2026, time.March, 8), date(2026, time.March, 9)))
	assert.True(t, SamePeriod(KindMonthly, date(2026, time.March, 1), date(2026, time.March, 31)))
}

func TestPrevPeriod(t *testing.T) {
	assert.Equal(t, date(2026, time.March, 13), PrevPeriod(KindDaily, date(2026, time.March, 14)))
	assert.Equal(t, date(2026, time.March, 2), PrevPeriod(KindWeekly, date(2026, time.March, 9)))
	assert.Equal(t, date(2026, time.February, 1), PrevPeriod(KindMonthly, date(2026, time.March, 1)))
}

func TestWellnessScore(t *testing.T) {
	// round(((8 + 9 + (11-2)) / 3) * 10) == 87
	assert.Equal(t, 87, WellnessScore(8, 2, 9))
	// Best and worst possible inputs stay inside [0,100].
	assert.Equal(t, 70, WellnessScore(10, 10, 10))
	assert.Equal(t, 40, WellnessScore(1, 1, 1))
}

func TestWellnessScore_Bounds(t *testing.T) {
	for mood := 1; mood <= 10; mood++ {
		for stress := 1; stress <= 10; stress++ {
			for energy := 1; energy <= 10; energy++ {
				score := WellnessScore(mood, stress, energy)
				assert.GreaterOrEqual(t, score, 0)
				assert.LessOrEqual(t, score, 100)
			}
		}
	}
}

func TestClampMetric(t *testing.T) {
	assert.Equal(t, 1, ClampMetric(-4))
	assert.Equal(t, 10, ClampMetric(15))
	assert.Equal(t, 7, ClampMetric(7))
}

func TestFilterWellnessEmotions(t *testing.T) {
	got := FilterWellnessEmotions([]string{"happy", "spurious", "tired"})
	assert.Equal(t, []string{"happy", "tired"}, got)

	assert.Nil(t, FilterWellnessEmotions([]string{"nope"}))
}

func TestMoodScore_UnknownDefaultsNeutral(t *testing.T) {
	assert.Equal(t, float64(3), MoodScore("unheard-of"))
	assert.Equal(t, float64(5), MoodScore(EmotionHappy))
}
