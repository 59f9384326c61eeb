// Package server exposes the ledger operations over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tabby/internal/middleware"
	"github.com/mmynk/tabby/internal/reminder"
	"github.com/mmynk/tabby/internal/service"
	"github.com/mmynk/tabby/internal/session"
)

// Server holds the handlers' collaborators.
type Server struct {
	tabs      *service.TabService
	ledger    *service.LedgerService
	sessions  *session.Manager
	resolver  session.Resolver
	reminders reminder.Generator
}

// New creates a Server wired to the given services.
func New(tabs *service.TabService, ledger *service.LedgerService, sessions *session.Manager, resolver session.Resolver, reminders reminder.Generator) *Server {
	return &Server{
		tabs:      tabs,
		ledger:    ledger,
		sessions:  sessions,
		resolver:  resolver,
		reminders: reminders,
	}
}

// Routes builds the full handler chain: route mux inside, then CORS,
// metrics, and request logging outside.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Public: tab creation and joining issue credentials, so they cannot
	// require one.
	mux.HandleFunc("POST /api/tabs", s.handleCreateTab)
	mux.HandleFunc("POST /api/tabs/{code}/join", s.handleJoinTab)

	auth := middleware.RequireAuth(s.resolver)
	mux.Handle("GET /api/tabs/{code}/balances", auth(http.HandlerFunc(s.handleBalances)))
	mux.Handle("POST /api/tabs/{code}/iou", auth(http.HandlerFunc(s.handleRecordIOU)))
	mux.Handle("POST /api/tabs/{code}/settle", auth(http.HandlerFunc(s.handleSettle)))
	mux.Handle("POST /api/tabs/{code}/remind", auth(http.HandlerFunc(s.handleRemind)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Logging(middleware.Metrics(middleware.CORS(mux)))
}
