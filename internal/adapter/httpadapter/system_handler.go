package httpadapter

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp int64   `json:"timestamp"`
	Uptime    float64 `json:"uptime_seconds"`
	Capacity  int     `json:"capacity"`
	Clients   int     `json:"ws_clients"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
		Uptime:    time.Since(s.startTime).Seconds(),
		Capacity:  s.registry.Capacity(),
	}
	if s.hub != nil {
		health.Clients = s.hub.Clients()
	}
	sendJSON(w, http.StatusOK, health)
}

// handleReadiness reports ready once every strategy has a table.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil || len(s.registry.Compare()) != 4 {
		sendError(w, http.StatusServiceUnavailable, "tables not initialized")
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}
