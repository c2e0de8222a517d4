// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// ReviewerDependencies defines the interface for roster reads.
type ReviewerDependencies interface {
	Reviewers(ctx context.Context) ([]model.Reviewer, error)
}

// ReviewersHandler handles roster requests.
type ReviewersHandler struct {
	deps ReviewerDependencies
}

// NewReviewersHandler creates a new reviewers handler.
func NewReviewersHandler(deps ReviewerDependencies) *ReviewersHandler {
	return &ReviewersHandler{deps: deps}
}

// HandleListReviewers handles GET /reviewers requests.
func (h *ReviewersHandler) HandleListReviewers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	reviewers, err := h.deps.Reviewers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if reviewers == nil {
		reviewers = []model.Reviewer{}
	}
	writeJSON(w, http.StatusOK, reviewers)
}
