// Package repository defines the activity directory store and its errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Store provides read/write access to the activity directory.
type Store interface {
	// List returns a copy of every activity in seed order.
	List(ctx context.Context) []model.Activity

	// Get returns a copy of one activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// AddParticipant enrolls email and returns the updated activity.
	// Returns ErrActivityNotFound or ErrAlreadySignedUp; the roster is unchanged on error.
	AddParticipant(ctx context.Context, name, email string) (model.Activity, error)

	// RemoveParticipant drops email and returns the updated activity.
	// Returns ErrActivityNotFound or ErrNotParticipant; the roster is unchanged on error.
	RemoveParticipant(ctx context.Context, name, email string) (model.Activity, error)

	// Count returns the number of activities and total enrolments.
	Count(ctx context.Context) (activities, participants int)
}
