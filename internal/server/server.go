package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lazypower/momentum/internal/gateway"
	"github.com/lazypower/momentum/internal/store"
)

// Server is the momentum HTTP server: a health endpoint plus the Telegram
// webhook that carries the chat command layer.
type Server struct {
	db       *store.DB
	notifier gateway.Notifier
	log      *log.Logger
	router   chi.Router
	secret   string
	version  string
	started  time.Time
}

// New creates a new Server. secret is the webhook path secret registered
// with Telegram via setWebhook; requests on any other path token are
// rejected.
func New(db *store.DB, notifier gateway.Notifier, logger *log.Logger, secret, version string) *Server {
	s := &Server{
		db:       db,
		notifier: notifier,
		log:      logger,
		secret:   secret,
		version:  version,
		started:  time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/api/health", s.handleHealth)
	r.Post("/webhook/{secret}", s.handleWebhook)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}
