package handlers

import (
	"encoding/json"
	"net/http"
)

// RequestActionRequest identifies a join request to approve or reject
type RequestActionRequest struct {
	RequestID string `json:"requestId"`
}

// HandleJoinRequests lists the pending join requests
func (s *Server) HandleJoinRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Filter by user when requested, otherwise all pending requests.
		if rawUserID := r.URL.Query().Get("userId"); rawUserID != "" {
			userID, ok := parseID(w, rawUserID, "userId")
			if !ok {
				return
			}
			requests, err := s.Engine.UserJoinRequests(userID)
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, requests)
			return
		}

		requests, err := s.Engine.ListJoinRequests()
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, requests)
	}
}

// HandleApproveRequest approves a pending join request
func (s *Server) HandleApproveRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RequestActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		requestID, ok := parseID(w, req.RequestID, "requestId")
		if !ok {
			return
		}

		request, err := s.Engine.ApproveJoinRequest(requestID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, request)
	}
}

// HandleRejectRequest rejects a pending join request
func (s *Server) HandleRejectRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RequestActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		requestID, ok := parseID(w, req.RequestID, "requestId")
		if !ok {
			return
		}

		request, err := s.Engine.RejectJoinRequest(requestID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, request)
	}
}

// HandleRequestStatus returns the status of the most recent request for a
// (user, community) pair
func (s *Server) HandleRequestStatus() http.HandlerFunc {
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
		communityID, ok := parseID(w, r.URL.Query().Get("communityId"), "communityId")
		if !ok {
			return
		}

		status, exists, err := s.Engine.GetJoinRequestStatus(userID, communityID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, map[string]interface{}{
			"status": status,
			"exists": exists,
		})
	}
}
