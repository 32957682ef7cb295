package httpadapter

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/insert/{method}", s.handleInsert).Methods("POST")
	api.HandleFunc("/search/{method}/{value}", s.handleSearch).Methods("GET")
	api.HandleFunc("/table/{method}", s.handleTable).Methods("GET")
	api.HandleFunc("/compare", s.handleCompare).Methods("GET")
	api.HandleFunc("/history/{method}", s.handleHistory).Methods("GET")

	if s.hub != nil {
		api.Handle("/ws", s.hub).Methods("GET")
	}

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET", "HEAD")
	s.router.HandleFunc("/ready", s.handleReadiness).Methods("GET", "HEAD")
	s.router.HandleFunc("/live", s.handleLiveness).Methods("GET", "HEAD")

	if s.config.EnableMetrics {
		s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	s.router.NotFoundHandler = http.HandlerFunc(handleNotFound)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	sendError(w, http.StatusNotFound, "endpoint not found")
}
