// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/namedeck/namedeck/internal/adapters/repository"
	"github.com/namedeck/namedeck/internal/domain/consensus"
	"github.com/namedeck/namedeck/internal/domain/model"
	"github.com/namedeck/namedeck/internal/domain/recommend"
	"github.com/namedeck/namedeck/internal/domain/suggest"
	"github.com/namedeck/namedeck/pkg/logger"
	"github.com/namedeck/namedeck/pkg/metrics"
)

// Service wires the stores and domain logic behind the HTTP API.
type Service struct {
	mu sync.Mutex

	store     repository.Store
	filter    *recommend.Filter
	generator suggest.Generator
	intake    *suggest.Intake

	rosterNames     []string
	cooldown        time.Duration
	strikeLimit     int
	suggestionCount int
	suggestionWait  time.Duration

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rosterNames:     []string{"Kyle", "Emily"},
		cooldown:        24 * time.Hour,
		strikeLimit:     3,
		suggestionCount: 20,
		suggestionWait:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the store, seeds the roster, and builds the
// domain components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemory()
		s.logger.Info(ctx, "using in-memory store")
	}

	// Seed reviewers that are not present yet; existing rows win.
	for _, name := range s.rosterNames {
		if _, err := s.store.ReviewerByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("seed roster: %w", err)
		}
		if _, err := s.store.AddReviewer(ctx, name); err != nil {
			return fmt.Errorf("seed reviewer %q: %w", name, err)
		}
		s.logger.Info(ctx, "seeded reviewer", logger.String("name", name))
	}

	s.filter = recommend.New(
		recommend.WithCooldown(s.cooldown),
		recommend.WithStrikeLimit(s.strikeLimit),
	)
	if s.generator != nil {
		s.intake = suggest.NewIntake(s.generator, s.store,
			suggest.WithCount(s.suggestionCount),
			suggest.WithTimeout(s.suggestionWait),
		)
	}

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("roster", len(s.rosterNames)),
		logger.Int("strike_limit", s.strikeLimit),
	)
	return nil
}

// Stop releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error(context.Background(), "closing store", logger.Error(err))
	}
	s.started = false
}

// Reviewers returns the roster.
func (s *Service) Reviewers(ctx context.Context) ([]model.Reviewer, error) {
	return s.store.ListReviewers(ctx)
}

// Recommendations computes the next candidates to show the reviewer.
func (s *Service) Recommendations(ctx context.Context, reviewerID string, limit int) ([]model.Candidate, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds())) }()

	if _, err := s.store.ReviewerByID(ctx, reviewerID); err != nil {
		return nil, err
	}
	candidates, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	history, err := s.store.SwipesByReviewer(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	out := s.filter.Recommend(ctx, candidates, history, limit)
	metrics.RecordRecommendationServed()
	return out, nil
}

// RecordSwipe validates references and appends one event to the log.
// ts is stored at face value; the zero value means "now".
func (s *Service) RecordSwipe(ctx context.Context, reviewerID, candidateID string, decision model.Decision, ts time.Time) (model.SwipeEvent, error) {
	if !decision.Valid() {
		return model.SwipeEvent{}, fmt.Errorf("%w: %q", model.ErrUnknownDecision, decision)
	}
	if _, err := s.store.ReviewerByID(ctx, reviewerID); err != nil {
		return model.SwipeEvent{}, err
	}
	if _, err := s.store.CandidateByID(ctx, candidateID); err != nil {
		return model.SwipeEvent{}, err
	}
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	sw, err := s.store.AppendSwipe(ctx, model.SwipeEvent{
		ReviewerID:  reviewerID,
		CandidateID: candidateID,
		Decision:    decision,
		TS:          ts,
	})
	if err != nil {
		return model.SwipeEvent{}, fmt.Errorf("append swipe: %w", err)
	}
	metrics.RecordSwipe(string(decision))
	return sw, nil
}

// Matches recomputes the consensus buckets from the full swipe log.
func (s *Service) Matches(ctx context.Context) (consensus.View, error) {
	roster, err := s.store.ListReviewers(ctx)
	if err != nil {
		return consensus.View{}, fmt.Errorf("list reviewers: %w", err)
	}
	swipes, err := s.store.AllSwipes(ctx)
	if err != nil {
		return consensus.View{}, fmt.Errorf("load swipe log: %w", err)
	}

	buckets := consensus.Aggregate(ctx, roster, swipes)

	view := consensus.View{
		MutualLikes:   []model.Candidate{},
		SoleLikes:     make(map[string][]model.Candidate, len(roster)),
		MutualRejects: []model.Candidate{},
	}
	resolve := func(ids []string) ([]model.Candidate, error) {
		out := make([]model.Candidate, 0, len(ids))
		for _, id := range ids {
			c, err := s.store.CandidateByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("resolve candidate: %w", err)
			}
			out = append(out, c)
		}
		return out, nil
	}

	if view.MutualLikes, err = resolve(buckets.MutualLikes); err != nil {
		return consensus.View{}, err
	}
	if view.MutualRejects, err = resolve(buckets.MutualRejects); err != nil {
		return consensus.View{}, err
	}
	for _, r := range roster {
		cs, err := resolve(buckets.SoleLikes[r.ID])
		if err != nil {
			return consensus.View{}, err
		}
		view.SoleLikes[r.Name] = cs
	}
	return view, nil
}

// Candidates lists the full candidate universe.
func (s *Service) Candidates(ctx context.Context) ([]model.Candidate, error) {
	return s.store.ListCandidates(ctx)
}

// CandidateByName is the exact-match lookup.
func (s *Service) CandidateByName(ctx context.Context, name string) (model.Candidate, error) {
	return s.store.CandidateByName(ctx, name)
}

// AddCandidate inserts a manually entered candidate.
func (s *Service) AddCandidate(ctx context.Context, c model.Candidate) (model.Candidate, error) {
	added, err := s.store.AddCandidate(ctx, c)
	if err != nil {
		return model.Candidate{}, err
	}
	metrics.RecordCandidateCreated("manual")
	return added, nil
}

// GenerateSuggestions runs one suggestion intake round.
func (s *Service) GenerateSuggestions(ctx context.Context) (suggest.Report, error) {
	if s.intake == nil {
		return suggest.Report{}, suggest.ErrDisabled
	}

	view, err := s.Matches(ctx)
	if err != nil {
		return suggest.Report{}, err
	}

	input := suggest.SummaryInput{
		MutualLikes: candidateNames(view.MutualLikes),
		SoleLikes:   make(map[string][]string, len(view.SoleLikes)),
		Disliked:    candidateNames(view.MutualRejects),
	}
	for reviewer, cs := range view.SoleLikes {
		input.SoleLikes[reviewer] = candidateNames(cs)
	}

	return s.intake.Run(ctx, input)
}

func candidateNames(cs []model.Candidate) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"roster_size":  len(s.rosterNames),
		"strike_limit": s.strikeLimit,
		"cooldown":     s.cooldown.String(),
	}
	if !s.started {
		return stats
	}

	if n, err := s.store.CountCandidates(ctx); err == nil {
		stats["candidates"] = n
		metrics.UpdateCandidatesTotal(n)
	}
	if n, err := s.store.CountSwipes(ctx); err == nil {
		stats["swipes"] = n
		metrics.UpdateSwipesTotal(n)
	}
	if reviewers, err := s.store.ListReviewers(ctx); err == nil {
		stats["reviewers"] = len(reviewers)
		metrics.UpdateReviewersTotal(len(reviewers))
	}
	return stats
}
