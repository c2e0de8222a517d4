// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// SwipeDependencies defines the interface for recording swipes.
type SwipeDependencies interface {
	RecordSwipe(ctx context.Context, reviewerID, candidateID string, decision model.Decision, ts time.Time) (model.SwipeEvent, error)
}

// SwipesHandler handles swipe submissions.
type SwipesHandler struct {
	deps SwipeDependencies
}

// NewSwipesHandler creates a new swipes handler.
func NewSwipesHandler(deps SwipeDependencies) *SwipesHandler {
	return &SwipesHandler{deps: deps}
}

// swipeRequest mirrors the POST /swipes body. ts is optional RFC3339;
// it exists for the migration/backdating path and defaults to now.
type swipeRequest struct {
	ReviewerID  string `json:"reviewer_id"`
	CandidateID string `json:"candidate_id"`
	Decision    string `json:"decision"`
	TS          string `json:"ts,omitempty"`
}

func (s swipeRequest) validate() (model.Decision, time.Time, error) {
	switch {
	case strings.TrimSpace(s.ReviewerID) == "":
		return "", time.Time{}, errors.New("missing reviewer_id")
	case strings.TrimSpace(s.CandidateID) == "":
		return "", time.Time{}, errors.New("missing candidate_id")
	}

	decision, err := model.ParseDecision(s.Decision)
	if err != nil {
		return "", time.Time{}, err
	}

	var ts time.Time
	if s.TS != "" {
		ts, err = time.Parse(time.RFC3339, s.TS)
		if err != nil {
			return "", time.Time{}, errors.New("invalid ts; must be RFC3339")
		}
	}
	return decision, ts, nil
}

// HandlePostSwipe handles POST /swipes requests. The decision is
// validated against the closed enum before anything is persisted.
func (h *SwipesHandler) HandlePostSwipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	decision, ts, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	sw, err := h.deps.RecordSwipe(r.Context(), req.ReviewerID, req.CandidateID, decision, ts)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sw)
}
