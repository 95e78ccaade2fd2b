// Package store persists the student roster.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

// InMemoryStore keeps the roster in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	students map[id.VoterID]models.Student
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{students: make(map[id.VoterID]models.Student)}
}

func (s *InMemoryStore) Create(_ context.Context, student models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.students[student.ID]; exists {
		return fmt.Errorf("%w: student %s already registered", sentinel.ErrConflict, student.ID)
	}
	s.students[student.ID] = student
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, student models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.students[student.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	student.RegisteredAt = existing.RegisteredAt
	s.students[student.ID] = student
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, voterID id.VoterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[voterID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.students, voterID)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, voterID id.VoterID) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[voterID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &student, nil
}

// List returns every student ordered by ID.
func (s *InMemoryStore) List(_ context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		out = append(out, student)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
