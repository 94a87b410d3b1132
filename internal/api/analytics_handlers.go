package api

import (
	"net/http"

	"github.com/clarityos/clarity-server/internal/http/response"
)

// The analytics handlers are thin: every computation is a pure
// recomputation in the service layer, so each handler just relays it.

func (s *Server) handleEmotionHistogram(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.analytics.EmotionHistogram(r.Context()), s.logger)
}

func (s *Server) handleWordFrequency(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.analytics.WordFrequency(r.Context()), s.logger)
}

func (s *Server) handleMoodActivityCorrelation(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.analytics.MoodActivityCorrelation(r.Context()), s.logger)
}

func (s *Server) handleMoodTimePatterns(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.analytics.MoodTimePatterns(r.Context()), s.logger)
}

func (s *Server) handleWritingInsights(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.analytics.WritingInsights(r.Context()), s.logger)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.analytics.GoalProgress(r.Context()), s.logger)
}

func (s *Server) handleGrowthInsights(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.analytics.PersonalGrowthInsights(r.Context()), s.logger)
}
