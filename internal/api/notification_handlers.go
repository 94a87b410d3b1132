package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clarityos/clarity-server/internal/http/response"
)

// handleListNotifications returns all notification records, oldest first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.store.ListNotifications(), s.logger)
}

// handleMarkNotificationRead flags a notification as read.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.MarkNotificationRead(id) {
		response.NotFound(w, "Notification not found", s.logger)
		return
	}
	response.NoContent(w)
}
