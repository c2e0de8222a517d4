// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/namedeck/namedeck/internal/adapters/repository"
	"github.com/namedeck/namedeck/internal/domain/consensus"
	"github.com/namedeck/namedeck/internal/domain/model"
	"github.com/namedeck/namedeck/internal/domain/suggest"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service package.
type Dependencies interface {
	Reviewers(ctx context.Context) ([]model.Reviewer, error)
	Recommendations(ctx context.Context, reviewerID string, limit int) ([]model.Candidate, error)
	RecordSwipe(ctx context.Context, reviewerID, candidateID string, decision model.Decision, ts time.Time) (model.SwipeEvent, error)
	Matches(ctx context.Context) (consensus.View, error)
	Candidates(ctx context.Context) ([]model.Candidate, error)
	CandidateByName(ctx context.Context, name string) (model.Candidate, error)
	AddCandidate(ctx context.Context, c model.Candidate) (model.Candidate, error)
	GenerateSuggestions(ctx context.Context) (suggest.Report, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler            *RootHandler
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	reviewersHandler       *ReviewersHandler
	recommendationsHandler *RecommendationsHandler
	swipesHandler          *SwipesHandler
	matchesHandler         *MatchesHandler
	candidatesHandler      *CandidatesHandler
	suggestionsHandler     *SuggestionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, defaultLimit, maxLimit int) *Server {
	return &Server{
		rootHandler:            NewRootHandler(),
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		reviewersHandler:       NewReviewersHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps, defaultLimit, maxLimit),
		swipesHandler:          NewSwipesHandler(deps),
		matchesHandler:         NewMatchesHandler(deps),
		candidatesHandler:      NewCandidatesHandler(deps),
		suggestionsHandler:     NewSuggestionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	handle := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, CORSMiddleware(MetricsMiddleware(h, endpoint)))
	}

	handle("/", "root", s.rootHandler.HandleRoot)
	handle("/healthz", "healthz", s.healthHandler.HandleHealth)
	handle("/stats", "stats", s.statsHandler.HandleStats)
	handle("/reviewers", "reviewers", s.reviewersHandler.HandleListReviewers)
	handle("/recommendations/", "recommendations", s.recommendationsHandler.HandleGetRecommendations)
	handle("/swipes", "swipes", s.swipesHandler.HandlePostSwipe)
	handle("/matches", "matches", s.matchesHandler.HandleGetMatches)
	handle("/dashboard", "dashboard", s.matchesHandler.HandleGetMatches)
	handle("/candidates", "candidates", s.candidatesHandler.HandleCandidates)
	handle("/suggestions", "suggestions", s.suggestionsHandler.HandlePostSuggestions)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service errors into HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrDuplicateName):
		writeError(w, http.StatusConflict, "duplicate_name", err)
	case errors.Is(err, model.ErrUnknownDecision):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
