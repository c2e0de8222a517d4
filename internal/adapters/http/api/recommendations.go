// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// RecommendationDependencies defines the interface for the deck reads.
type RecommendationDependencies interface {
	Recommendations(ctx context.Context, reviewerID string, limit int) ([]model.Candidate, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps         RecommendationDependencies
	defaultLimit int
	maxLimit     int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, defaultLimit, maxLimit int) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:         deps,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// HandleGetRecommendations handles GET /recommendations/{reviewer_id}?limit=N.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	reviewerID := strings.TrimPrefix(r.URL.Path, "/recommendations/")
	if reviewerID == "" || strings.Contains(reviewerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}

	candidates, err := h.deps.Recommendations(r.Context(), reviewerID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	writeJSON(w, http.StatusOK, candidates)
}
