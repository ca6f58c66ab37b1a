package handlers

import (
	"net/http"
	"time"
)

// HandleNotifications returns the notification feed, newest first
func (s *Server) HandleNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		items, err := s.Engine.ListNotifications()
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, items)
	}
}

// HandleUserProfile returns a user's profile by id
func (s *Server) HandleUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := parseID(w, r.URL.Query().Get("userId"), "userId")
		if !ok {
			return
		}

		user, err := s.Engine.GetUser(userID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, user)
	}
}

// HandleHealth reports entity counts and request metrics
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.Engine.Counts()
		if err != nil {
			s.writeError(w, err)
			return
		}
		feedCount, err := s.Engine.NotificationCount()
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, map[string]interface{}{
			"status":        "healthy",
			"time":          time.Now().UTC(),
			"communities":   counts.Communities,
			"posts":         counts.Posts,
			"comments":      counts.Comments,
			"notifications": feedCount,
			"metrics":       s.Metrics.Snapshot(),
		})
	}
}
