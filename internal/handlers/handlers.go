package handlers

import (
	"encoding/json"
	"net/http"

	"campus-grove/internal/engine"
	"campus-grove/internal/utils"

	"github.com/google/uuid"
)

// Server holds all server dependencies around the engine facade.
type Server struct {
	Engine  *engine.Engine
	Metrics *utils.MetricsCollector
}

// NewServer creates a new Server instance with the given components
func NewServer(eng *engine.Engine, metrics *utils.MetricsCollector) *Server {
	return &Server{
		Engine:  eng,
		Metrics: metrics,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.Metrics.IncrementErrors()
	if appErr, ok := err.(*utils.AppError); ok {
		http.Error(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// parseID parses a UUID from a request field, writing a 400 on failure.
func parseID(w http.ResponseWriter, raw string, field string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "Invalid "+field+" format", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
