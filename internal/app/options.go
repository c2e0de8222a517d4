package service

import (
	"time"

	"github.com/namedeck/namedeck/internal/adapters/repository"
	"github.com/namedeck/namedeck/internal/domain/suggest"
	"github.com/namedeck/namedeck/pkg/logger"
)

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

// WithStore sets the persistence backend. The default is the
// in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithReviewers sets the roster seeded at startup.
func WithReviewers(names []string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.rosterNames = names
		}
	}
}

// WithCooldown sets the recommendation cooldown window.
func WithCooldown(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cooldown = d
		}
	}
}

// WithStrikeLimit sets the permanent-exclusion threshold.
func WithStrikeLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.strikeLimit = n
		}
	}
}

// WithGenerator enables the suggestion intake with the given backend.
func WithGenerator(g suggest.Generator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

// WithSuggestionCount sets how many names one intake run asks for.
func WithSuggestionCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestionCount = n
		}
	}
}

// WithSuggestionTimeout bounds the external generation call.
func WithSuggestionTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.suggestionWait = d
		}
	}
}
