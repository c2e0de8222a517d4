// Package repository defines the persistence interfaces and errors.
package repository

import (
	"context"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// ReviewerStore holds the fixed roster.
type ReviewerStore interface {
	// AddReviewer inserts a reviewer. Returns ErrDuplicateName if the
	// display name is taken.
	AddReviewer(ctx context.Context, name string) (model.Reviewer, error)

	// ReviewerByID returns ErrNotFound for unknown ids.
	ReviewerByID(ctx context.Context, id string) (model.Reviewer, error)

	// ReviewerByName looks up by exact display name.
	ReviewerByName(ctx context.Context, name string) (model.Reviewer, error)

	ListReviewers(ctx context.Context) ([]model.Reviewer, error)
}

// CandidateStore holds immutable-once-created candidate records.
type CandidateStore interface {
	// AddCandidate inserts c, assigning ID and CreatedAt. Names are
	// unique (case-sensitive); duplicates return ErrDuplicateName.
	AddCandidate(ctx context.Context, c model.Candidate) (model.Candidate, error)

	// CandidateByID returns ErrNotFound for unknown ids.
	CandidateByID(ctx context.Context, id string) (model.Candidate, error)

	// CandidateByName is the exact-match lookup used for dedup.
	CandidateByName(ctx context.Context, name string) (model.Candidate, error)

	ListCandidates(ctx context.Context) ([]model.Candidate, error)

	CountCandidates(ctx context.Context) (int, error)
}

// SwipeLog is the append-only record of swipe events. Events are never
// updated or deleted, and the same (reviewer, candidate) pair may
// appear any number of times.
type SwipeLog interface {
	// AppendSwipe inserts s, assigning an ID. The caller sets TS; the
	// log stores it at face value.
	AppendSwipe(ctx context.Context, s model.SwipeEvent) (model.SwipeEvent, error)

	// SwipesByReviewer returns every event for one reviewer, in no
	// particular order.
	SwipesByReviewer(ctx context.Context, reviewerID string) ([]model.SwipeEvent, error)

	// AllSwipes returns the full log across reviewers.
	AllSwipes(ctx context.Context) ([]model.SwipeEvent, error)

	// HasSwipe reports whether the pair has at least one event. Used
	// by the bulk importer's skip-if-already-swiped rule.
	HasSwipe(ctx context.Context, reviewerID, candidateID string) (bool, error)

	CountSwipes(ctx context.Context) (int, error)
}

// Store bundles the three persistence concerns behind one handle.
type Store interface {
	ReviewerStore
	CandidateStore
	SwipeLog

	Close() error
}
