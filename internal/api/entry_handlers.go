package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clarityos/clarity-server/internal/domain"
	"github.com/clarityos/clarity-server/internal/http/response"
	"github.com/clarityos/clarity-server/internal/service"
)

// handleListEntries returns all entries of a kind.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	kind, ok := entryKind(r)
	if !ok {
		response.BadRequest(w, "Unknown entry kind", s.logger)
		return
	}

	entries, err := s.diaryService.ListEntries(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, entries, s.logger)
}

// handleCreateEntry creates a new entry in the kind's collection.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	kind, ok := entryKind(r)
	if !ok {
		response.BadRequest(w, "Unknown entry kind", s.logger)
		return
	}

	var req service.CreateEntryRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	req.Kind = kind

	entry, err := s.diaryService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, entry, s.logger)
}

// handleUpdateEntry merges a patch into an existing entry.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	kind, ok := entryKind(r)
	if !ok {
		response.BadRequest(w, "Unknown entry kind", s.logger)
		return
	}
	id := chi.URLParam(r, "id")

	var patch domain.EntryPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	entry, err := s.diaryService.UpdateEntry(r.Context(), id, kind, patch)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, entry, s.logger)
}

// handleDeleteEntry removes an entry. Missing ids delete successfully.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	kind, ok := entryKind(r)
	if !ok {
		response.BadRequest(w, "Unknown entry kind", s.logger)
		return
	}

	if err := s.diaryService.DeleteEntry(r.Context(), chi.URLParam(r, "id"), kind); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleFindEntryForPeriod returns the entry covering the same period as
// the `date` query parameter (default today).
func (s *Server) handleFindEntryForPeriod(w http.ResponseWriter, r *http.Request) {
	kind, ok := entryKind(r)
	if !ok {
		response.BadRequest(w, "Unknown entry kind", s.logger)
		return
	}

	date, err := queryDate(r)
	if err != nil {
		response.BadRequest(w, "Invalid date parameter", s.logger)
		return
	}

	entry, err := s.diaryService.FindForPeriod(r.Context(), kind, date)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if entry == nil {
		response.NotFound(w, "No entry for that period", s.logger)
		return
	}
	response.Success(w, entry, s.logger)
}

// handleEntryStreak returns current/longest streaks for a kind.
func (s *Server) handleEntryStreak(w http.ResponseWriter, r *http.Request) {
	kind, ok := entryKind(r)
	if !ok {
		response.BadRequest(w, "Unknown entry kind", s.logger)
		return
	}

	streak, err := s.diaryService.Streak(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, streak, s.logger)
}
