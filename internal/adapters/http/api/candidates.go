// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// CandidateDependencies defines the interface for candidate access.
type CandidateDependencies interface {
	Candidates(ctx context.Context) ([]model.Candidate, error)
	CandidateByName(ctx context.Context, name string) (model.Candidate, error)
	AddCandidate(ctx context.Context, c model.Candidate) (model.Candidate, error)
}

// CandidatesHandler handles candidate listing and creation.
type CandidatesHandler struct {
	deps CandidateDependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// candidateRequest mirrors the POST /candidates body.
type candidateRequest struct {
	Name    string `json:"name"`
	Gender  string `json:"gender,omitempty"`
	Origin  string `json:"origin,omitempty"`
	Meaning string `json:"meaning,omitempty"`
}

// HandleCandidates dispatches GET and POST /candidates requests.
// GET with ?name=X is the exact-match lookup used for dedup.
func (h *CandidatesHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CandidatesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		c, err := h.deps.CandidateByName(r.Context(), name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
		return
	}

	candidates, err := h.deps.Candidates(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *CandidatesHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing name"))
		return
	}

	c, err := h.deps.AddCandidate(r.Context(), model.Candidate{
		Name:    req.Name,
		Gender:  req.Gender,
		Origin:  req.Origin,
		Meaning: req.Meaning,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
