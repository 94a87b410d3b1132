package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/errors"
	"github.com/clarityos/clarity-server/internal/id"
	"github.com/clarityos/clarity-server/internal/store"
	"github.com/clarityos/clarity-server/internal/validation"
)

// WellnessService owns the daily check-in collection.
type WellnessService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewWellnessService creates a new wellness service.
func NewWellnessService(s *store.Store, v *validation.Validator, logger *slog.Logger) *WellnessService {
	return &WellnessService{
		store:     s,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckInRequest carries the user-supplied fields of a check-in. Metric
// values outside [1,10] are accepted and clamped rather than rejected.
type CheckInRequest struct {
	Date     time.Time `json:"date"`
	Mood     int       `json:"mood" validate:"required"`
	Stress   int       `json:"stress" validate:"required"`
	Energy   int       `json:"energy" validate:"required"`
	Emotions []string  `json:"emotions,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// CheckIn clamps the metrics, drops unknown emotion tags, derives the
// wellness score, and upserts the record by calendar day. The date defaults
// to today when the client leaves it empty.
func (s *WellnessService) CheckIn(ctx context.Context, req CheckInRequest) (*domain.WellnessCheckIn, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	checkInID, err := id.Generate(id.PrefixWellness)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate check-in id")
	}

	mood := domain.ClampMetric(req.Mood)
	stress := domain.ClampMetric(req.Stress)
	energy := domain.ClampMetric(req.Energy)

	checkIn := domain.WellnessCheckIn{
		ID:            checkInID,
		Date:          date,
		CreatedAt:     now,
		UpdatedAt:     now,
		Mood:          mood,
		Stress:        stress,
		Energy:        energy,
		Emotions:      domain.FilterWellnessEmotions(req.Emotions),
		Notes:         req.Notes,
		WellnessScore: domain.WellnessScore(mood, stress, energy),
	}
	stored := s.store.UpsertCheckIn(checkIn)

	s.logger.Info("wellness check-in recorded", "id", stored.ID, "day", domain.DayKey(stored.Date), "score", stored.WellnessScore)
	return &stored, nil
}

// ListCheckIns returns all check-ins in collection order.
func (s *WellnessService) ListCheckIns(ctx context.Context) ([]domain.WellnessCheckIn, error) {
	return s.store.ListCheckIns(), nil
}

// TodayCheckIn returns today's check-in, or ErrNotFound.
func (s *WellnessService) TodayCheckIn(ctx context.Context) (*domain.WellnessCheckIn, error) {
	checkIn := s.store.FindCheckInForDay(s.now())
	if checkIn == nil {
		return nil, errors.NotFoundf("no check-in recorded today")
	}
	return checkIn, nil
}

// Streak computes current and longest daily check-in streaks.
func (s *WellnessService) Streak(ctx context.Context) Streak {
	return calculateStreak(
		s.now(),
		func(t time.Time) time.Time { return t.AddDate(0, 0, -1) },
		func(t time.Time) bool { return s.store.FindCheckInForDay(t) != nil },
	)
}

// WellnessEmotionCount is one emotion frequency row with its share of all
// tagged check-ins in the window.
type WellnessEmotionCount struct {
	Emotion    string  `json:"emotion"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// WellnessPoint is one time-series sample.
type WellnessPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Mood  int    `json:"mood"`
}

// WellnessAnalytics summarizes check-ins over a trailing window.
type WellnessAnalytics struct {
	Days          int                    `json:"days"`
	CheckInCount  int                    `json:"checkInCount"`
	AverageMood   float64                `json:"averageMood"`
	AverageStress float64                `json:"averageStress"`
	AverageEnergy float64                `json:"averageEnergy"`
	AverageScore  float64                `json:"averageScore"`
	BestDay       string                 `json:"bestDay,omitempty"`
	WorstDay      string                 `json:"worstDay,omitempty"`
	Emotions      []WellnessEmotionCount `json:"emotions"`
	TimeSeries    []WellnessPoint        `json:"timeSeries"`
}

// Analytics summarizes the trailing windowDays of check-ins: metric
// averages, best and worst scoring days, emotion frequencies with
// percentages, and a date-ordered score series. Zero check-ins in the
// window yields a zero-valued report, never a division by zero.
func (s *WellnessService) Analytics(ctx context.Context, windowDays int) (WellnessAnalytics, error) {
	if windowDays <= 0 {
		return WellnessAnalytics{}, errors.Validationf("window must be positive, got %d", windowDays)
	}

	cutoff := s.now().AddDate(0, 0, -windowDays)
	analytics := WellnessAnalytics{Days: windowDays, Emotions: []WellnessEmotionCount{}, TimeSeries: []WellnessPoint{}}

	var moodSum, stressSum, energySum, scoreSum int
	emotionCounts := make(map[string]int)
	taggedTotal := 0
	bestScore, worstScore := -1, -1

	var window []domain.WellnessCheckIn
	for _, c := range s.store.ListCheckIns() {
		if c.Date.Before(cutoff) {
			continue
		}
		window = append(window, c)
	}
	slices.SortFunc(window, func(a, b domain.WellnessCheckIn) int {
		return a.Date.Compare(b.Date)
	})

	for _, c := range window {
		analytics.CheckInCount++
		moodSum += c.Mood
		stressSum += c.Stress
		energySum += c.Energy
		scoreSum += c.WellnessScore

		if bestScore < 0 || c.WellnessScore > bestScore {
			bestScore = c.WellnessScore
			analytics.BestDay = domain.DayKey(c.Date)
		}
		if worstScore < 0 || c.WellnessScore < worstScore {
			worstScore = c.WellnessScore
			analytics.WorstDay = domain.DayKey(c.Date)
		}

		for _, tag := range c.Emotions {
			emotionCounts[tag]++
			taggedTotal++
		}

		analytics.TimeSeries = append(analytics.TimeSeries, WellnessPoint{
			Date:  domain.DayKey(c.Date),
			Score: c.WellnessScore,
			Mood:  c.Mood,
		})
	}

	if analytics.CheckInCount > 0 {
		n := float64(analytics.CheckInCount)
		analytics.AverageMood = float64(moodSum) / n
		analytics.AverageStress = float64(stressSum) / n
		analytics.AverageEnergy = float64(energySum) / n
		analytics.AverageScore = float64(scoreSum) / n
	}

	for emotion, count := range emotionCounts {
		analytics.Emotions = append(analytics.Emotions, WellnessEmotionCount{
			Emotion:    emotion,
			Count:      count,
			Percentage: float64(count) / float64(taggedTotal) * 100,
		})
	}
	slices.SortFunc(analytics.Emotions, func(a, b WellnessEmotionCount) int {
		if b.Count != a.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Emotion, b.Emotion)
	})

	return analytics, nil
}
