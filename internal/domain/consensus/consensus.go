// Package consensus derives cross-reviewer agreement buckets from the
// full swipe log.
package consensus

import (
	"context"
	"sort"

	"github.com/namedeck/namedeck/internal/domain/model"
)

// View is Buckets resolved to full candidates for display. The
// service layer builds it; handlers and the suggestion summary
// consume it.
type View struct {
	MutualLikes   []model.Candidate            `json:"mutual_likes"`
	SoleLikes     map[string][]model.Candidate `json:"sole_likes"` // keyed by reviewer display name
	MutualRejects []model.Candidate            `json:"mutual_rejects"`
}

// Buckets classifies candidates by the roster's current decisions.
// Candidates with a pending, maybe, or mixed-without-like state appear
// in no bucket at all.
type Buckets struct {
	// MutualLikes holds candidate IDs every roster reviewer currently
	// likes or superlikes.
	MutualLikes []string `json:"mutual_likes"`

	// SoleLikes maps reviewer ID to candidate IDs only that reviewer
	// currently likes.
	SoleLikes map[string][]string `json:"sole_likes"`

	// MutualRejects holds candidate IDs every roster reviewer has
	// explicitly disliked.
	MutualRejects []string `json:"mutual_rejects"`
}

// Aggregate folds all swipe events into per-reviewer current decisions
// and buckets each candidate. The fold is most-recent-by-timestamp per
// (reviewer, candidate) pair.
//
// The rule generalizes to any roster size: mutual-like needs a
// like/superlike from every reviewer, mutual-reject an explicit
// dislike from every reviewer, and a single liker lands in that
// reviewer's sole bucket.
func Aggregate(_ context.Context, roster []model.Reviewer, swipes []model.SwipeEvent) Buckets {
	// candidate -> reviewer -> latest event
	latest := make(map[string]map[string]model.SwipeEvent)
	for _, ev := range swipes {
		byReviewer := latest[ev.CandidateID]
		if byReviewer == nil {
			byReviewer = make(map[string]model.SwipeEvent)
			latest[ev.CandidateID] = byReviewer
		}
		cur, ok := byReviewer[ev.ReviewerID]
		if !ok || ev.TS.After(cur.TS) {
			byReviewer[ev.ReviewerID] = ev
		}
	}

	out := Buckets{
		MutualLikes:   []string{},
		SoleLikes:     make(map[string][]string, len(roster)),
		MutualRejects: []string{},
	}
	for _, r := range roster {
		out.SoleLikes[r.ID] = []string{}
	}

	for candidateID, byReviewer := range latest {
		likes := 0
		dislikes := 0
		var soleLiker string
		for _, r := range roster {
			ev, ok := byReviewer[r.ID]
			if !ok {
				continue
			}
			switch {
			case ev.Decision.Positive():
				likes++
				soleLiker = r.ID
			case ev.Decision == model.DecisionDislike:
				dislikes++
			}
		}

		switch {
		case likes == len(roster):
			out.MutualLikes = append(out.MutualLikes, candidateID)
		case dislikes == len(roster):
			out.MutualRejects = append(out.MutualRejects, candidateID)
		case likes == 1:
			out.SoleLikes[soleLiker] = append(out.SoleLikes[soleLiker], candidateID)
		}
	}

	// Map iteration order is random; keep the buckets stable for
	// callers that diff or render them.
	sort.Strings(out.MutualLikes)
	sort.Strings(out.MutualRejects)
	for id := range out.SoleLikes {
		sort.Strings(out.SoleLikes[id])
	}

	return out
}
