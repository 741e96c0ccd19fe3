package api

import (
	"errors"
	"net/http"

	"github.com/mergington/activities/internal/adapters/repository"
)

// ActivitiesHandler serves the read side of the directory.
type ActivitiesHandler struct {
	deps ActivityReader
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivityReader) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleList handles GET /activities.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	acts, err := h.deps.Activities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	out := make(map[string]activityView, len(acts))
	for _, a := range acts {
		out[a.Name] = newActivityView(a)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /activities/{name}.
func (h *ActivitiesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_activity"
	a, err := h.deps.Activity(r.Context(), r.PathValue("name"))
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "activity_not_found", WrapKind(op, ErrNotFound, err))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	default:
		writeJSON(w, http.StatusOK, newActivityView(a))
	}
}
