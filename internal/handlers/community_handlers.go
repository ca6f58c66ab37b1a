package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// CreateCommunityRequest represents a request to create a new community
type CreateCommunityRequest struct {
	Name      string `json:"name"`               // Community name
	ParentID  string `json:"parentId,omitempty"` // Optional parent community ID (UUID as string)
	CreatorID string `json:"creatorId"`          // Creator ID (UUID as string)
}

// JoinCommunityRequest represents a request to join a community
type JoinCommunityRequest struct {
	UserID      string `json:"userId"`
	CommunityID string `json:"communityId"`
	AsAdmin     bool   `json:"asAdmin"` // external authorization decision
}

// AutoJoinRequest represents a request to auto-join the child of a community
type AutoJoinRequest struct {
	UserID   string `json:"userId"`
	ParentID string `json:"parentId"`
}

// HandleCommunities handles listing and creating communities
func (s *Server) HandleCommunities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		switch r.Method {
		case http.MethodGet:
			if raw := r.URL.Query().Get("id"); raw != "" {
				communityID, ok := parseID(w, raw, "id")
				if !ok {
					return
				}
				community, err := s.Engine.GetCommunity(communityID)
				if err != nil {
					s.writeError(w, err)
					return
				}
				s.writeJSON(w, community)
				return
			}

			communities, err := s.Engine.ListCommunities()
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, communities)

		case http.MethodPost:
			var req CreateCommunityRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request format", http.StatusBadRequest)
				return
			}

			creatorID, ok := parseID(w, req.CreatorID, "creatorId")
			if !ok {
				return
			}

			var parentID *uuid.UUID
			if req.ParentID != "" {
				id, ok := parseID(w, req.ParentID, "parentId")
				if !ok {
					return
				}
				parentID = &id
			}

			community, err := s.Engine.CreateCommunity(req.Name, parentID, creatorID)
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, community)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleJoin handles membership join attempts
func (s *Server) HandleJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req JoinCommunityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		userID, ok := parseID(w, req.UserID, "userId")
		if !ok {
			return
		}
		communityID, ok := parseID(w, req.CommunityID, "communityId")
		if !ok {
			return
		}

		outcome, err := s.Engine.Join(userID, communityID, req.AsAdmin)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, outcome)
	}
}

// HandleAutoJoin adds a user to the first child community of a parent
func (s *Server) HandleAutoJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req AutoJoinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		userID, ok := parseID(w, req.UserID, "userId")
		if !ok {
			return
		}
		parentID, ok := parseID(w, req.ParentID, "parentId")
		if !ok {
			return
		}

		child, err := s.Engine.AutoJoinChild(userID, parentID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if child == nil {
			// No child community to join.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.writeJSON(w, child)
	}
}

// HandleJoinedCommunities lists the communities a user belongs to
func (s *Server) HandleJoinedCommunities() http.HandlerFunc {
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

		communities, err := s.Engine.JoinedCommunities(userID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, communities)
	}
}
