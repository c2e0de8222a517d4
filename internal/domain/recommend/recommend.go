// Package recommend decides which candidates a reviewer is shown next.
//
// The filter folds over the reviewer's full swipe history, newest
// first, and excludes candidates that are either inside the cooldown
// window or have hit the strike limit (3 dislikes = banned, 3 likes =
// graduated). Everything else stays eligible, shuffled.
package recommend

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// Default filter configuration constants.
const (
	defaultCooldown    = 24 * time.Hour
	defaultStrikeLimit = 3
)

// Filter computes the eligible candidate set for one reviewer.
// A Filter is safe for concurrent use only when the injected rand
// source is; the default source is guarded by the package-level lock
// inside math/rand.
type Filter struct {
	cooldown    time.Duration
	strikeLimit int
	clock       func() time.Time
	shuffle     func(n int, swap func(i, j int))
}

// New constructs a Filter with default configuration.
func New(opts ...Option) *Filter {
	f := &Filter{
		cooldown:    defaultCooldown,
		strikeLimit: defaultStrikeLimit,
		clock:       time.Now,
		shuffle:     rand.Shuffle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// tally tracks per-candidate decision counts within one invocation.
// Built fresh each call; the filter keeps no state between calls.
type tally struct {
	likes    int
	dislikes int
}

// Recommend returns up to limit candidates the reviewer should see,
// uniformly shuffled. A negative limit is clamped to zero. Fewer
// eligible candidates than limit returns all of them, unpadded; an
// empty eligible set returns an empty slice, not an error.
//
// history is the reviewer's complete swipe log in any order; the
// filter sorts it newest-first by timestamp before folding. Timestamps
// are taken at face value, never insertion order.
func (f *Filter) Recommend(_ context.Context, candidates []model.Candidate, history []model.SwipeEvent, limit int) []model.Candidate {
	if limit < 0 {
		limit = 0
	}

	now := f.clock()

	events := make([]model.SwipeEvent, len(history))
	copy(events, history)
	sort.Slice(events, func(i, j int) bool {
		return events[i].TS.After(events[j].TS)
	})

	excluded := make(map[string]struct{})
	tallies := make(map[string]*tally)

	for i := range events {
		ev := &events[i]
		// Exclusion is monotonic within a call: once a candidate is
		// out, its older events cannot change the outcome.
		if _, out := excluded[ev.CandidateID]; out {
			continue
		}
		t := tallies[ev.CandidateID]
		if t == nil {
			t = &tally{}
			tallies[ev.CandidateID] = t
		}

		switch ev.Decision {
		case model.DecisionDislike:
			t.dislikes++
			if now.Sub(ev.TS) < f.cooldown {
				excluded[ev.CandidateID] = struct{}{}
			}
			if t.dislikes >= f.strikeLimit {
				// Third strike: banned regardless of recency.
				excluded[ev.CandidateID] = struct{}{}
			}
		case model.DecisionLike, model.DecisionSuperlike:
			t.likes++
			if now.Sub(ev.TS) < f.cooldown {
				excluded[ev.CandidateID] = struct{}{}
			}
			if t.likes >= f.strikeLimit {
				// Graduated: no further confirmation needed.
				excluded[ev.CandidateID] = struct{}{}
			}
		case model.DecisionMaybe:
			// Recorded in history but deliberately inert.
		}
	}

	eligible := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, out := excluded[c.ID]; !out {
			eligible = append(eligible, c)
		}
	}

	f.shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible
}
