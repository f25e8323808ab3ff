// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/pkg/logger"
	"golang.org/x/time/rate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ReportRunner
	Finder
	Reloader
	StatsProvider
}

// ReportRunner executes reports.
type ReportRunner interface {
	Run(ctx context.Context, name string, p reports.Params) (types.ReportResult, error)
	RunAll(ctx context.Context, p reports.Params) (types.ReportBatch, error)
}

// Finder resolves players and teams by name.
type Finder interface {
	FindPlayers(ctx context.Context, query string, limit int) ([]types.NamedEntity, error)
	FindTeams(ctx context.Context, query string, limit int) ([]types.NamedEntity, error)
}

// Reloader re-reads the dataset source.
type Reloader interface {
	Reload(ctx context.Context) (types.DatasetInfo, error)
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	reportsHandler *ReportsHandler
	lookupHandler  *LookupHandler
	reloadHandler  *ReloadHandler
	statsHandler   *StatsHandler
	healthHandler  *HealthHandler

	limiter *rate.Limiter
	logger  logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{maxLookupLimit: defaultMaxLookupLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		reportsHandler: NewReportsHandler(deps),
		lookupHandler:  NewLookupHandler(deps, cfg.maxLookupLimit),
		reloadHandler:  NewReloadHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		healthHandler:  NewHealthHandler(),
		logger:         cfg.logger,
	}
	if cfg.rps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.rps), max(cfg.burst, 1))
	}
	return s
}

// Register attaches all HTTP routes to mux. Every route except /healthz
// shares the rate limiter.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return RateLimitMiddleware(s.limiter, h)
	}

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(limited(s.statsHandler.HandleStats), "stats"))
	mux.HandleFunc("/reports", MetricsMiddleware(limited(s.reportsHandler.HandleRunAll), "reports"))
	mux.HandleFunc("/reports/", MetricsMiddleware(limited(s.reportsHandler.HandleReport), "report"))
	mux.HandleFunc("/players", MetricsMiddleware(limited(s.lookupHandler.HandlePlayers), "players"))
	mux.HandleFunc("/teams", MetricsMiddleware(limited(s.lookupHandler.HandleTeams), "teams"))
	mux.HandleFunc("/reload", MetricsMiddleware(limited(s.reloadHandler.HandleReload), "reload"))
}

// Handler wraps h with request id propagation and request logging.
func (s *Server) Handler(h http.Handler) http.Handler {
	return RequestIDMiddleware(s.logger, h)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError classifies err and writes it as an errorResponse.
func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

// allow rejects requests whose method is not method.
func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, ErrMethodNotAllowed)
	return false
}
