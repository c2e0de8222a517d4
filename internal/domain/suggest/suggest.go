// Package suggest feeds consensus back into candidate generation.
//
// An external text-generation service is seeded with a summary of the
// current buckets and proposes new names; each proposal is checked
// against the candidate store by exact name before insertion. The
// generator is a black box behind the Generator interface.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/namedeck/namedeck/internal/adapters/repository"
	"github.com/namedeck/namedeck/internal/domain/model"
	"github.com/namedeck/namedeck/pkg/metrics"
)

// Default intake configuration constants.
const (
	defaultCount    = 20
	defaultTimeout  = 30 * time.Second
	maxDislikedSeed = 50
)

// Generator proposes candidate names from a consensus summary.
type Generator interface {
	// Suggest returns up to n proposed name strings. Implementations
	// must report unreachable-service and unparseable-payload failures
	// as ErrUnavailable and ErrBadPayload respectively.
	Suggest(ctx context.Context, summary string, n int) ([]string, error)
}

// SummaryInput carries the consensus state rendered into the prompt,
// already resolved to display names.
type SummaryInput struct {
	MutualLikes []string
	SoleLikes   map[string][]string // reviewer display name -> candidate names
	Disliked    []string
}

// Empty reports whether there is any feedback to summarize.
func (in SummaryInput) Empty() bool {
	if len(in.MutualLikes) > 0 || len(in.Disliked) > 0 {
		return false
	}
	for _, names := range in.SoleLikes {
		if len(names) > 0 {
			return false
		}
	}
	return true
}

// Summary renders the textual seed handed to the generator.
func Summary(in SummaryInput, want int) string {
	var sb strings.Builder

	sb.WriteString("We are looking for baby names. Here is our feedback so far:\n\n")
	sb.WriteString("Names we all like: ")
	sb.WriteString(strings.Join(in.MutualLikes, ", "))
	sb.WriteString("\n")
	reviewers := make([]string, 0, len(in.SoleLikes))
	for reviewer := range in.SoleLikes {
		reviewers = append(reviewers, reviewer)
	}
	sort.Strings(reviewers)
	for _, reviewer := range reviewers {
		fmt.Fprintf(&sb, "Names %s likes (no consensus yet): %s\n", reviewer, strings.Join(in.SoleLikes[reviewer], ", "))
	}
	disliked := in.Disliked
	if len(disliked) > maxDislikedSeed {
		disliked = disliked[:maxDislikedSeed]
	}
	sb.WriteString("Names we disliked: ")
	sb.WriteString(strings.Join(disliked, ", "))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Based on this style, please generate %d NEW, unique baby names we might both like.\n", want)
	sb.WriteString(`Return ONLY a JSON list of strings, e.g. ["Name1", "Name2"].`)

	return sb.String()
}

// Report summarizes one intake run. Inserts committed before a failure
// stay committed; Added reflects them even when Run returns an error.
type Report struct {
	Proposed []string `json:"proposed"`
	Added    int      `json:"added"`
	Skipped  int      `json:"skipped"`
}

// Intake orchestrates one generation round.
type Intake struct {
	generator Generator
	store     repository.CandidateStore

	count   int
	timeout time.Duration
}

// NewIntake constructs an Intake with default configuration.
func NewIntake(generator Generator, store repository.CandidateStore, opts ...Option) *Intake {
	in := &Intake{
		generator: generator,
		store:     store,
		count:     defaultCount,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run asks the generator for proposals and inserts the unseen ones.
// The generator call is bounded by the configured timeout and treated
// as fail-soft: an error surfaces to the caller, and every insertion
// already committed remains valid.
func (in *Intake) Run(ctx context.Context, input SummaryInput) (Report, error) {
	metrics.RecordSuggestionRequest()
	start := time.Now()
	defer func() { metrics.RecordSuggestionLatency(float64(time.Since(start).Milliseconds())) }()

	if input.Empty() {
		return Report{}, ErrNoFeedback
	}

	genCtx, cancel := context.WithTimeout(ctx, in.timeout)
	defer cancel()

	names, err := in.generator.Suggest(genCtx, Summary(input, in.count), in.count)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadPayload):
			metrics.RecordSuggestionError("bad_payload")
		default:
			metrics.RecordSuggestionError("unavailable")
		}
		return Report{}, fmt.Errorf("generate suggestions: %w", err)
	}

	report := Report{Proposed: names}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		// Exact-name dedup; each insert is independent and idempotent
		// by name, so a failure mid-loop loses nothing already added.
		if _, err := in.store.CandidateByName(ctx, name); err == nil {
			report.Skipped++
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return report, fmt.Errorf("lookup %q: %w", name, err)
		}

		if _, err := in.store.AddCandidate(ctx, model.Candidate{Name: name}); err != nil {
			if errors.Is(err, repository.ErrDuplicateName) {
				report.Skipped++
				continue
			}
			return report, fmt.Errorf("insert %q: %w", name, err)
		}
		metrics.RecordCandidateCreated("suggested")
		report.Added++
	}

	return report, nil
}
