// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListActivities(ctx context.Context) (map[string]model.Activity, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Cancel(ctx context.Context, activity, email string) (string, error)
	RecentChanges(ctx context.Context, n int) ([]model.RosterEvent, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	changesHandler    *ChangesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
		changesHandler:    NewChangesHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/changes", MetricsMiddleware(s.changesHandler.HandleGetChanges, "changes"))

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", MetricsMiddleware(s.activitiesHandler.HandleList, "activities"))
		r.Post("/{activity_name}/signup", MetricsMiddleware(s.activitiesHandler.HandleSignup, "signup"))
		r.Delete("/{activity_name}/signup", MetricsMiddleware(s.activitiesHandler.HandleCancel, "signup"))
	})
}

// NewRouter returns a chi router carrying the middleware every route shares.
func NewRouter(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not Found", Code: codeNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed", Code: codeBadRequest})
	})
	return r
}

const (
	codeNotFound   = "not_found"
	codeBadRequest = "bad_request"
	codeInternal   = "internal_error"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err's kind to a status code and writes the error body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: detail(err), Code: codeNotFound})
	case errors.Is(err, ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: detail(err), Code: codeBadRequest})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: http.StatusText(http.StatusInternalServerError), Code: codeInternal})
	}
}

// classify tags a service error with the API kind for its store kind.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return WrapKind(op, ErrNotFound, err)
	case errors.Is(err, repository.ErrInvalidOperation):
		return WrapKind(op, ErrBadRequest, err)
	default:
		return WrapKind(op, ErrInternal, err)
	}
}

// detail is the human message shown by the bundled frontend.
func detail(err error) string {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return "Activity not found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return "Student is already signed up for this activity"
	case errors.Is(err, repository.ErrNotSignedUp):
		return "Student is not signed up for this activity"
	case errors.Is(err, repository.ErrActivityFull):
		return "Activity is full"
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.err.Error()
	}
	return err.Error()
}
