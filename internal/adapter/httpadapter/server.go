package httpadapter

import (
	"net/http"
	"time"

	"github.com/asharavesh/Hashing-Techniques/internal/core/ports"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	"github.com/gorilla/mux"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("httpadapter")

// Config toggles optional parts of the HTTP surface.
type Config struct {
	// CORSOrigins restricts cross-origin requests. Empty allows any origin.
	CORSOrigins   []string
	EnableMetrics bool
}

// Server wires the hash table registry, the history service and the live
// event feed to HTTP routes.
type Server struct {
	registry  *engine.Registry
	history   ports.HistoryService
	hub       *Hub
	router    *mux.Router
	config    Config
	startTime time.Time
}

// NewServer creates a new API Server instance
func NewServer(registry *engine.Registry, history ports.HistoryService, hub *Hub, config Config) *Server {
	s := &Server{
		registry:  registry,
		history:   history,
		hub:       hub,
		router:    mux.NewRouter(),
		config:    config,
		startTime: time.Now(),
	}

	s.setupRoutes()
	return s
}

// Router returns the routes wrapped in the middleware chain.
func (s *Server) Router() http.Handler {
	var handler http.Handler = s.router

	// last applied runs first
	handler = RecoveryMiddleware(handler)
	handler = LoggingMiddleware(handler)
	handler = RequestIDMiddleware(handler)
	handler = SecurityHeadersMiddleware(handler)
	handler = CorsMiddleware(s.config.CORSOrigins)(handler)

	return handler
}
