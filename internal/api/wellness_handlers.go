package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/clarityos/clarity-server/internal/http/response"
	"github.com/clarityos/clarity-server/internal/service"
)

// defaultWellnessWindowDays is the analytics window when the client does
// not pass one.
const defaultWellnessWindowDays = 30

// handleListCheckIns returns all wellness check-ins.
func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	checkIns, err := s.wellness.ListCheckIns(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, checkIns, s.logger)
}

// handleCheckIn records (or replaces) today's wellness check-in.
func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req service.CheckInRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	checkIn, err := s.wellness.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, checkIn, s.logger)
}

// handleTodayCheckIn returns today's check-in if one exists.
func (s *Server) handleTodayCheckIn(w http.ResponseWriter, r *http.Request) {
	checkIn, err := s.wellness.TodayCheckIn(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, checkIn, s.logger)
}

// handleWellnessStreak returns the consecutive-day check-in streak.
func (s *Server) handleWellnessStreak(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.wellness.Streak(r.Context()), s.logger)
}

// handleWellnessAnalytics summarizes check-ins over a trailing window
// given by the `days` query parameter.
func (s *Server) handleWellnessAnalytics(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", defaultWellnessWindowDays)

	analytics, err := s.wellness.Analytics(r.Context(), days)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, analytics, s.logger)
}
