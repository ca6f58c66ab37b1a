package handlers

import (
	"encoding/json"
	"net/http"
)

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	CommunityID string `json:"communityId"` // Community ID (UUID as string)
	AuthorID    string `json:"authorId"`    // Author ID (UUID as string)
	Text        string `json:"text"`        // Post text
}

// CreateCommentRequest represents a request to comment on a post
type CreateCommentRequest struct {
	PostID   string `json:"postId"`
	AuthorID string `json:"authorId"`
	Text     string `json:"text"`
}

// HandlePost creates posts
func (s *Server) HandlePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		communityID, ok := parseID(w, req.CommunityID, "communityId")
		if !ok {
			return
		}
		authorID, ok := parseID(w, req.AuthorID, "authorId")
		if !ok {
			return
		}

		post, err := s.Engine.CreatePost(communityID, authorID, req.Text)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, post)
	}
}

// HandleComment creates comments
func (s *Server) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		postID, ok := parseID(w, req.PostID, "postId")
		if !ok {
			return
		}
		authorID, ok := parseID(w, req.AuthorID, "authorId")
		if !ok {
			return
		}

		comment, err := s.Engine.AddComment(postID, authorID, req.Text)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, comment)
	}
}
