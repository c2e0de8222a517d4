// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/namedeck/namedeck/internal/domain/suggest"
)

// SuggestionDependencies defines the interface for the intake trigger.
type SuggestionDependencies interface {
	GenerateSuggestions(ctx context.Context) (suggest.Report, error)
}

// SuggestionsHandler handles suggestion intake requests.
type SuggestionsHandler struct {
	deps SuggestionDependencies
}

// NewSuggestionsHandler creates a new suggestions handler.
func NewSuggestionsHandler(deps SuggestionDependencies) *SuggestionsHandler {
	return &SuggestionsHandler{deps: deps}
}

// HandlePostSuggestions handles POST /suggestions requests. Generator
// failures are reported distinctly and never masked as an empty run;
// inserts committed before a failure stay committed.
func (h *SuggestionsHandler) HandlePostSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	report, err := h.deps.GenerateSuggestions(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, suggest.ErrDisabled):
			writeError(w, http.StatusNotImplemented, "suggestions_disabled", err)
		case errors.Is(err, suggest.ErrNoFeedback):
			writeError(w, http.StatusUnprocessableEntity, "no_feedback", err)
		case errors.Is(err, suggest.ErrBadPayload):
			writeError(w, http.StatusBadGateway, "bad_payload", err)
		case errors.Is(err, suggest.ErrUnavailable):
			writeError(w, http.StatusBadGateway, "unavailable", err)
		default:
			writeDomainError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}
