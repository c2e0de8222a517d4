// Package model contains domain models passed between layers.
package model

import "time"

// Reviewer is a member of the fixed swipe roster. Reviewers are seeded
// at startup and never change afterwards.
type Reviewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Candidate is a proposed name. The name is unique across the store
// (case-sensitive); the descriptive fields are optional free text.
// Candidates are never deleted once created.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	Meaning   string    `json:"meaning,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SwipeEvent is an immutable fact: one reviewer made one decision on
// one candidate at a point in time. History is never collapsed; a pair
// may accumulate any number of events, and TS is taken at face value
// (the import path and tests backdate it).
type SwipeEvent struct {
	ID          string    `json:"id"`
	ReviewerID  string    `json:"reviewer_id"`
	CandidateID string    `json:"candidate_id"`
	Decision    Decision  `json:"decision"`
	TS          time.Time `json:"ts"`
}
