// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidActivity reports a malformed activity definition.
var ErrInvalidActivity = errors.New("invalid activity")

// Activity is a named extracurricular offering with a participant roster.
// Participants holds each email at most once, in signup order.
type Activity struct {
	Name            string   `koanf:"-"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft returns the remaining capacity; it goes negative when overbooked.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	c := a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}

// Normalize drops empty and repeated participants, keeping first occurrences.
func (a Activity) Normalize() Activity {
	c := a.Clone()
	seen := make(map[string]struct{}, len(c.Participants))
	c.Participants = slices.DeleteFunc(c.Participants, func(email string) bool {
		if strings.TrimSpace(email) == "" {
			return true
		}
		if _, dup := seen[email]; dup {
			return true
		}
		seen[email] = struct{}{}
		return false
	})
	return c
}

// Validate checks the fields that must hold before an activity is seeded.
func (a Activity) Validate() error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidActivity)
	case strings.Contains(a.Name, "/"):
		return fmt.Errorf("%w: name %q contains '/'", ErrInvalidActivity, a.Name)
	case a.MaxParticipants < 0:
		return fmt.Errorf("%w: %q has negative max_participants", ErrInvalidActivity, a.Name)
	}
	return nil
}
