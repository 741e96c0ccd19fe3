package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
)

// roster pairs an activity with a membership index over its participants.
type roster struct {
	activity model.Activity
	members  map[string]struct{}
}

// MemoryStore is the in-memory Store. The key set is fixed at construction;
// only rosters change afterwards.
type MemoryStore struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*roster
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore seeds a store from activities. Rosters are normalized so an
// email appears at most once per activity.
func NewMemoryStore(_ context.Context, activities []model.Activity) (*MemoryStore, error) {
	s := &MemoryStore{
		order:      make([]string, 0, len(activities)),
		activities: make(map[string]*roster, len(activities)),
	}
	for _, a := range activities {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, exists := s.activities[a.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateActivity, a.Name)
		}
		a = a.Normalize()
		r := &roster{activity: a, members: make(map[string]struct{}, len(a.Participants))}
		for _, email := range a.Participants {
			r.members[email] = struct{}{}
		}
		s.activities[a.Name] = r
		s.order = append(s.order, a.Name)
	}
	return s, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) []model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Activity, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.activities[name].activity.Clone())
	}
	return out
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	return r.activity.Clone(), nil
}

// AddParticipant implements Store.
func (s *MemoryStore) AddParticipant(_ context.Context, name, email string) (model.Activity, error) {
	if strings.TrimSpace(email) == "" {
		return model.Activity{}, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	if _, present := r.members[email]; present {
		return model.Activity{}, ErrAlreadySignedUp
	}
	r.members[email] = struct{}{}
	r.activity.Participants = append(r.activity.Participants, email)
	return r.activity.Clone(), nil
}

// RemoveParticipant implements Store.
func (s *MemoryStore) RemoveParticipant(_ context.Context, name, email string) (model.Activity, error) {
	if strings.TrimSpace(email) == "" {
		return model.Activity{}, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	if _, present := r.members[email]; !present {
		return model.Activity{}, ErrNotParticipant
	}
	delete(r.members, email)
	if i := slices.Index(r.activity.Participants, email); i >= 0 {
		r.activity.Participants = slices.Delete(r.activity.Participants, i, i+1)
	}
	return r.activity.Clone(), nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) (activities, participants int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.activities {
		participants += len(r.members)
	}
	return len(s.activities), participants
}
