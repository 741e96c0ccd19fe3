// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ActivityReader

	// Signup and Remove mutate a roster and return a confirmation message.
	Signup(ctx context.Context, activity, email string) (string, error)
	Remove(ctx context.Context, activity, email string) (string, error)
}

// ActivityReader exposes the read side of the directory.
type ActivityReader interface {
	Activities(ctx context.Context) ([]model.Activity, error)
	Activity(ctx context.Context, name string) (model.Activity, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	activitiesHandler   *ActivitiesHandler
	signupHandler       *SignupHandler
	participantsHandler *ParticipantsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		activitiesHandler:   NewActivitiesHandler(deps),
		signupHandler:       NewSignupHandler(deps),
		participantsHandler: NewParticipantsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Path values such as {name} are
// delivered URL-decoded by the mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /activities", MetricsMiddleware(s.activitiesHandler.HandleList, "activities"))
	mux.HandleFunc("GET /activities/{name}", MetricsMiddleware(s.activitiesHandler.HandleGet, "activity"))
	mux.HandleFunc("POST /activities/{name}/signup", MetricsMiddleware(s.signupHandler.HandleSignup, "signup"))
	mux.HandleFunc("DELETE /activities/{name}/participants", MetricsMiddleware(s.participantsHandler.HandleRemove, "remove"))
}

// activityView is the wire shape of one activity. The name is the map key in
// list responses.
type activityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func newActivityView(a model.Activity) activityView {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return activityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse carries the message twice: "detail" is what browser clients
// of the service read.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
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
	writeJSON(w, status, errorResponse{Code: code, Message: msg, Detail: msg})
}
