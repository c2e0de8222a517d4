package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// MemoryStore implements Store with mutex-guarded maps. It backs the
// service when no database path is configured, and the tests.
type MemoryStore struct {
	mu sync.RWMutex

	reviewers        map[string]model.Reviewer // id -> reviewer
	reviewersByName  map[string]string         // name -> id
	candidates       map[string]model.Candidate
	candidatesByName map[string]string
	swipes           []model.SwipeEvent
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		reviewers:        make(map[string]model.Reviewer),
		reviewersByName:  make(map[string]string),
		candidates:       make(map[string]model.Candidate),
		candidatesByName: make(map[string]string),
	}
}

// Close satisfies Store; there is nothing to release.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) AddReviewer(_ context.Context, name string) (model.Reviewer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reviewersByName[name]; exists {
		return model.Reviewer{}, fmt.Errorf("reviewer %q: %w", name, ErrDuplicateName)
	}
	r := model.Reviewer{ID: uuid.New().String(), Name: name}
	s.reviewers[r.ID] = r
	s.reviewersByName[name] = r.ID
	return r, nil
}

func (s *MemoryStore) ReviewerByID(_ context.Context, id string) (model.Reviewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviewers[id]
	if !ok {
		return model.Reviewer{}, fmt.Errorf("reviewer %s: %w", id, ErrNotFound)
	}
	return r, nil
}

func (s *MemoryStore) ReviewerByName(_ context.Context, name string) (model.Reviewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.reviewersByName[name]
	if !ok {
		return model.Reviewer{}, fmt.Errorf("reviewer %q: %w", name, ErrNotFound)
	}
	return s.reviewers[id], nil
}

func (s *MemoryStore) ListReviewers(_ context.Context) ([]model.Reviewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Reviewer, 0, len(s.reviewers))
	for _, r := range s.reviewers {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) AddCandidate(_ context.Context, c model.Candidate) (model.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.candidatesByName[c.Name]; exists {
		return model.Candidate{}, fmt.Errorf("candidate %q: %w", c.Name, ErrDuplicateName)
	}
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	s.candidates[c.ID] = c
	s.candidatesByName[c.Name] = c.ID
	return c, nil
}

func (s *MemoryStore) CandidateByID(_ context.Context, id string) (model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return model.Candidate{}, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *MemoryStore) CandidateByName(_ context.Context, name string) (model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.candidatesByName[name]
	if !ok {
		return model.Candidate{}, fmt.Errorf("candidate %q: %w", name, ErrNotFound)
	}
	return s.candidates[id], nil
}

func (s *MemoryStore) ListCandidates(_ context.Context) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) CountCandidates(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates), nil
}

func (s *MemoryStore) AppendSwipe(_ context.Context, sw model.SwipeEvent) (model.SwipeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw.ID = uuid.New().String()
	s.swipes = append(s.swipes, sw)
	return sw, nil
}

func (s *MemoryStore) SwipesByReviewer(_ context.Context, reviewerID string) ([]model.SwipeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.SwipeEvent
	for _, sw := range s.swipes {
		if sw.ReviewerID == reviewerID {
			out = append(out, sw)
		}
	}
	return out, nil
}

func (s *MemoryStore) AllSwipes(_ context.Context) ([]model.SwipeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SwipeEvent, len(s.swipes))
	copy(out, s.swipes)
	return out, nil
}

func (s *MemoryStore) HasSwipe(_ context.Context, reviewerID, candidateID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sw := range s.swipes {
		if sw.ReviewerID == reviewerID && sw.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CountSwipes(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.swipes), nil
}
