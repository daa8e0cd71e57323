// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/ninebox/internal/adapters/repository"
	"github.com/okian/ninebox/internal/adapters/roster"
	service "github.com/okian/ninebox/internal/app"
	"github.com/okian/ninebox/internal/domain/insight"
	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Begin(ctx context.Context, people []*model.Person, source string) (string, error)
	Close(ctx context.Context, sessionID string) error

	Move(ctx context.Context, sessionID, personID string, pos int) (types.PersonView, *types.ChangeView, error)
	SetNotes(ctx context.Context, sessionID, personID, text string) error

	Person(ctx context.Context, sessionID, personID string) (types.PersonView, error)
	People(ctx context.Context, sessionID string) ([]types.PersonView, error)
	Statistics(ctx context.Context, sessionID, dimension, value string) (types.StatisticsView, error)
	Changes(ctx context.Context, sessionID string) ([]types.ChangeView, error)
	Analyze(ctx context.Context, sessionID string) ([]types.Insight, error)
	Export(ctx context.Context, sessionID string) ([]types.ExportRecord, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	sessionsHandler *SessionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		sessionsHandler: NewSessionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleSessions, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.HandleSession, "sessions"))
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

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps core error kinds onto status codes. Anything the
// taxonomy does not name is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation),
		errors.Is(err, roster.ErrImport),
		errors.Is(err, service.ErrEmptyRoster),
		errors.Is(err, service.ErrRosterTooLarge),
		errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, insight.ErrAnalysis):
		writeError(w, http.StatusInternalServerError, "analysis_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
