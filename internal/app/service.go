// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Operation names used in logs and rejection metrics.
const (
	opSignup = "signup"
	opRemove = "remove"
)

// Service implements the API dependencies for the activity directory.
type Service struct {
	directory repository.Store
	logger    logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service over an already seeded directory.
func New(directory repository.Store, opts ...Option) *Service {
	s := &Service{
		directory: directory,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("directory")
	}
	return s
}

// Activities returns every activity with its current participants.
func (s *Service) Activities(ctx context.Context) ([]model.Activity, error) {
	return s.directory.List(ctx), nil
}

// Activity returns one activity by name.
func (s *Service) Activity(ctx context.Context, name string) (model.Activity, error) {
	return s.directory.Get(ctx, name)
}

// Signup enrolls email in the named activity and returns a confirmation.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	a, err := s.directory.AddParticipant(ctx, name, email)
	if err != nil {
		s.reject(ctx, opSignup, name, email, err)
		return "", err
	}

	metrics.RecordSignup(name)
	s.publish(ctx, a)
	s.logger.Info(ctx, "participant signed up",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Remove drops email from the named activity and returns a confirmation.
func (s *Service) Remove(ctx context.Context, name, email string) (string, error) {
	a, err := s.directory.RemoveParticipant(ctx, name, email)
	if err != nil {
		s.reject(ctx, opRemove, name, email, err)
		return "", err
	}

	metrics.RecordRemoval(name)
	s.publish(ctx, a)
	s.logger.Info(ctx, "participant removed",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return fmt.Sprintf("Removed %s from %s", email, name), nil
}

// RefreshMetrics republishes every gauge from the directory state.
func (s *Service) RefreshMetrics(ctx context.Context) {
	for _, a := range s.directory.List(ctx) {
		s.publish(ctx, a)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	ctx := context.Background()
	activities, participants := s.directory.Count(ctx)

	perActivity := make(map[string]int, activities)
	openSpots := 0
	for _, a := range s.directory.List(ctx) {
		perActivity[a.Name] = len(a.Participants)
		if left := a.SpotsLeft(); left > 0 {
			openSpots += left
		}
	}

	return map[string]any{
		"activities":   activities,
		"participants": participants,
		"openSpots":    openSpots,
		"perActivity":  perActivity,
	}
}

// publish pushes the roster size of a and the directory totals to metrics.
func (s *Service) publish(ctx context.Context, a model.Activity) {
	metrics.UpdateParticipants(a.Name, len(a.Participants))
	activities, participants := s.directory.Count(ctx)
	metrics.UpdateActivityCount(activities)
	metrics.UpdateTotalParticipants(participants)
}

func (s *Service) reject(ctx context.Context, op, name, email string, err error) {
	reason := "internal"
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		reason = "activity_not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		reason = "already_signed_up"
	case errors.Is(err, repository.ErrNotParticipant):
		reason = "not_participant"
	case errors.Is(err, repository.ErrInvalidEmail):
		reason = "invalid_email"
	}
	metrics.RecordRejection(op, reason)
	s.logger.Debug(ctx, "roster change rejected",
		logger.String("operation", op),
		logger.String("activity", name),
		logger.String("email", email),
		logger.String("reason", reason),
	)
}
