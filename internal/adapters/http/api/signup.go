package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mergington/activities/internal/adapters/repository"
)

// SignupDependencies defines the interface for enrolling participants.
type SignupDependencies interface {
	Signup(ctx context.Context, activity, email string) (string, error)
}

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps SignupDependencies
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps SignupDependencies) *SignupHandler {
	return &SignupHandler{deps: deps}
}

// HandleSignup handles POST /activities/{name}/signup?email=... requests.
// Unknown activities and repeat signups are both client errors (400).
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	email, err := emailParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	msg, err := h.deps.Signup(r.Context(), r.PathValue("name"), email)
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		writeError(w, http.StatusBadRequest, "activity_not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrAlreadySignedUp):
		writeError(w, http.StatusBadRequest, "already_signed_up", WrapKind(op, ErrConflict, err))
	case errors.Is(err, repository.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	default:
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	}
}

// emailParam returns the email query parameter, rejecting blank values.
func emailParam(r *http.Request) (string, error) {
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		return "", repository.ErrInvalidEmail
	}
	return email, nil
}
