package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/mergington/activities/internal/adapters/repository"
)

// ParticipantsDependencies defines the interface for removing participants.
type ParticipantsDependencies interface {
	Remove(ctx context.Context, activity, email string) (string, error)
}

// ParticipantsHandler handles roster removal requests.
type ParticipantsHandler struct {
	deps ParticipantsDependencies
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantsDependencies) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps}
}

// HandleRemove handles DELETE /activities/{name}/participants?email=... requests.
// Unknown activities and non-participants are both 404.
func (h *ParticipantsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove_participant"
	email, err := emailParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	msg, err := h.deps.Remove(r.Context(), r.PathValue("name"), email)
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "activity_not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrNotParticipant):
		writeError(w, http.StatusNotFound, "not_participant", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	default:
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}
