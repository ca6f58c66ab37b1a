package handlers

import (
	"encoding/json"
	"net/http"
)

// LikeRequest represents a like toggle on a post or comment
type LikeRequest struct {
	PostID    string `json:"postId,omitempty"`
	CommentID string `json:"commentId,omitempty"`
	UserID    string `json:"userId"`
}

// VoteRequest represents a single vote click on a post
type VoteRequest struct {
	CommunityID string `json:"communityId"`
	PostID      string `json:"postId"`
	Delta       int    `json:"delta"` // +1 upvote, -1 downvote
}

// HandleLikePost toggles a like on a post
func (s *Server) HandleLikePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		postID, ok := parseID(w, req.PostID, "postId")
		if !ok {
			return
		}
		userID, ok := parseID(w, req.UserID, "userId")
		if !ok {
			return
		}

		liked, err := s.Engine.LikePost(postID, userID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, map[string]bool{"liked": liked})
	}
}

// HandleLikeComment toggles a like on a comment
func (s *Server) HandleLikeComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		commentID, ok := parseID(w, req.CommentID, "commentId")
		if !ok {
			return
		}
		userID, ok := parseID(w, req.UserID, "userId")
		if !ok {
			return
		}

		liked, err := s.Engine.LikeComment(commentID, userID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, map[string]bool{"liked": liked})
	}
}

// HandleVote applies a vote click to a post
func (s *Server) HandleVote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req VoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		communityID, ok := parseID(w, req.CommunityID, "communityId")
		if !ok {
			return
		}
		postID, ok := parseID(w, req.PostID, "postId")
		if !ok {
			return
		}

		post, err := s.Engine.VotePost(communityID, postID, req.Delta)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, post)
	}
}
