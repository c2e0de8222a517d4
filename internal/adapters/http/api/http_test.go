package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/namedeck/namedeck/internal/adapters/repository"
	"github.com/namedeck/namedeck/internal/domain/consensus"
	"github.com/namedeck/namedeck/internal/domain/model"
	"github.com/namedeck/namedeck/internal/domain/suggest"
)

// mockDeps implements Dependencies and StatsProvider with canned
// responses; tests override individual fields per case.
type mockDeps struct {
	reviewers    []model.Reviewer
	candidates   []model.Candidate
	view         consensus.View
	report       suggest.Report
	err          error
	gotLimit     int
	gotSwipe     model.SwipeEvent
	gotCandidate model.Candidate
}

func (m *mockDeps) Reviewers(context.Context) ([]model.Reviewer, error) {
	return m.reviewers, m.err
}

func (m *mockDeps) Recommendations(_ context.Context, reviewerID string, limit int) ([]model.Candidate, error) {
	m.gotLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := m.candidates
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockDeps) RecordSwipe(_ context.Context, reviewerID, candidateID string, decision model.Decision, ts time.Time) (model.SwipeEvent, error) {
	if m.err != nil {
		return model.SwipeEvent{}, m.err
	}
	m.gotSwipe = model.SwipeEvent{
		ID:          "sw-1",
		ReviewerID:  reviewerID,
		CandidateID: candidateID,
		Decision:    decision,
		TS:          ts,
	}
	return m.gotSwipe, nil
}

func (m *mockDeps) Matches(context.Context) (consensus.View, error) {
	return m.view, m.err
}

func (m *mockDeps) Candidates(context.Context) ([]model.Candidate, error) {
	return m.candidates, m.err
}

func (m *mockDeps) CandidateByName(_ context.Context, name string) (model.Candidate, error) {
	if m.err != nil {
		return model.Candidate{}, m.err
	}
	for _, c := range m.candidates {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Candidate{}, fmt.Errorf("candidate %q: %w", name, repository.ErrNotFound)
}

func (m *mockDeps) AddCandidate(_ context.Context, c model.Candidate) (model.Candidate, error) {
	if m.err != nil {
		return model.Candidate{}, m.err
	}
	c.ID = "cand-new"
	m.gotCandidate = c
	return c, nil
}

func (m *mockDeps) GenerateSuggestions(context.Context) (suggest.Report, error) {
	return m.report, m.err
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	NewServer(deps, deps, 10, 100).Register(context.Background(), mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRootEndpoint(t *testing.T) {
	Convey("Given the registered routes", t, func() {
		mux := newTestMux(&mockDeps{})

		Convey("GET / returns the banner", func() {
			rec := doRequest(mux, http.MethodGet, "/", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "namedeck API is running")
		})

		Convey("unknown paths are 404", func() {
			rec := doRequest(mux, http.MethodGet, "/nope", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("every response carries the CORS header", func() {
			rec := doRequest(mux, http.MethodGet, "/", nil)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})

		Convey("OPTIONS preflight short-circuits", func() {
			rec := doRequest(mux, http.MethodOptions, "/swipes", nil)
			So(rec.Code, ShouldEqual, http.StatusNoContent)
		})

		Convey("GET /stats returns the provider's map", func() {
			rec := doRequest(mux, http.MethodGet, "/stats", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "started")
		})
	})
}

func TestReviewersEndpoint(t *testing.T) {
	Convey("Given a roster", t, func() {
		deps := &mockDeps{reviewers: []model.Reviewer{
			{ID: "rev-a", Name: "Emily"},
			{ID: "rev-b", Name: "Kyle"},
		}}
		mux := newTestMux(deps)

		Convey("GET /reviewers lists them", func() {
			rec := doRequest(mux, http.MethodGet, "/reviewers", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var got []model.Reviewer
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 2)
		})

		Convey("an empty roster yields an empty JSON array", func() {
			deps.reviewers = nil
			rec := doRequest(mux, http.MethodGet, "/reviewers", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
		})
	})
}

func TestRecommendationsEndpoint(t *testing.T) {
	Convey("Given candidates to recommend", t, func() {
		deps := &mockDeps{candidates: []model.Candidate{
			{ID: "c1", Name: "Luna"},
			{ID: "c2", Name: "Theo"},
		}}
		mux := newTestMux(deps)

		Convey("GET without limit uses the default", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/rev-a", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.gotLimit, ShouldEqual, 10)
		})

		Convey("an explicit limit is passed through", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/rev-a?limit=1", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.gotLimit, ShouldEqual, 1)

			var got []model.Candidate
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 1)
		})

		Convey("a zero limit is allowed", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/rev-a?limit=0", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
		})

		Convey("a negative limit is a bad request", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/rev-a?limit=-1", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("a non-numeric limit is a bad request", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/rev-a?limit=lots", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("a limit over the cap is rejected", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/rev-a?limit=101", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})

		Convey("a missing reviewer segment is a bad request", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("an unknown reviewer is 404", func() {
			deps.err = fmt.Errorf("reviewer missing: %w", repository.ErrNotFound)
			rec := doRequest(mux, http.MethodGet, "/recommendations/missing", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSwipesEndpoint(t *testing.T) {
	Convey("Given the swipes route", t, func() {
		deps := &mockDeps{}
		mux := newTestMux(deps)

		Convey("a valid swipe returns 201 with the event", func() {
			rec := doRequest(mux, http.MethodPost, "/swipes", map[string]string{
				"reviewer_id":  "rev-a",
				"candidate_id": "c1",
				"decision":     "like",
			})
			So(rec.Code, ShouldEqual, http.StatusCreated)
			So(deps.gotSwipe.Decision, ShouldEqual, model.DecisionLike)
			So(deps.gotSwipe.TS.IsZero(), ShouldBeTrue)
		})

		Convey("an explicit RFC3339 ts is forwarded", func() {
			rec := doRequest(mux, http.MethodPost, "/swipes", map[string]string{
				"reviewer_id":  "rev-a",
				"candidate_id": "c1",
				"decision":     "dislike",
				"ts":           "2025-06-01T10:00:00Z",
			})
			So(rec.Code, ShouldEqual, http.StatusCreated)
			So(deps.gotSwipe.TS.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("a malformed ts is a bad request", func() {
			rec := doRequest(mux, http.MethodPost, "/swipes", map[string]string{
				"reviewer_id":  "rev-a",
				"candidate_id": "c1",
				"decision":     "like",
				"ts":           "yesterday",
			})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("an unknown decision is a bad request", func() {
			rec := doRequest(mux, http.MethodPost, "/swipes", map[string]string{
				"reviewer_id":  "rev-a",
				"candidate_id": "c1",
				"decision":     "love",
			})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("missing fields are a bad request", func() {
			rec := doRequest(mux, http.MethodPost, "/swipes", map[string]string{"decision": "like"})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("a garbled body is a bad request", func() {
			req := httptest.NewRequest(http.MethodPost, "/swipes", strings.NewReader("{nope"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("unknown references are 404", func() {
			deps.err = fmt.Errorf("reviewer missing: %w", repository.ErrNotFound)
			rec := doRequest(mux, http.MethodPost, "/swipes", map[string]string{
				"reviewer_id":  "missing",
				"candidate_id": "c1",
				"decision":     "like",
			})
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("GET is not found", func() {
			rec := doRequest(mux, http.MethodGet, "/swipes", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMatchesEndpoint(t *testing.T) {
	Convey("Given a consensus view", t, func() {
		deps := &mockDeps{view: consensus.View{
			MutualLikes: []model.Candidate{{ID: "c1", Name: "Luna"}},
			SoleLikes: map[string][]model.Candidate{
				"Kyle": {{ID: "c2", Name: "Theo"}},
			},
			MutualRejects: []model.Candidate{},
		}}
		mux := newTestMux(deps)

		Convey("GET /matches returns the buckets", func() {
			rec := doRequest(mux, http.MethodGet, "/matches", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "Luna")
			So(rec.Body.String(), ShouldContainSubstring, "mutual_likes")
		})

		Convey("GET /dashboard serves the same view", func() {
			rec := doRequest(mux, http.MethodGet, "/dashboard", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "Theo")
		})
	})
}

func TestCandidatesEndpoint(t *testing.T) {
	Convey("Given existing candidates", t, func() {
		deps := &mockDeps{candidates: []model.Candidate{{ID: "c1", Name: "Luna"}}}
		mux := newTestMux(deps)

		Convey("GET lists them all", func() {
			rec := doRequest(mux, http.MethodGet, "/candidates", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var got []model.Candidate
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 1)
		})

		Convey("GET with ?name= does an exact lookup", func() {
			rec := doRequest(mux, http.MethodGet, "/candidates?name=Luna", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "c1")

			rec = doRequest(mux, http.MethodGet, "/candidates?name=luna", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("POST creates a candidate", func() {
			rec := doRequest(mux, http.MethodPost, "/candidates", map[string]string{
				"name":   "Theo",
				"gender": "boy",
			})
			So(rec.Code, ShouldEqual, http.StatusCreated)
			So(deps.gotCandidate.Name, ShouldEqual, "Theo")
			So(deps.gotCandidate.Gender, ShouldEqual, "boy")
		})

		Convey("POST without a name is a bad request", func() {
			rec := doRequest(mux, http.MethodPost, "/candidates", map[string]string{"gender": "boy"})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("a duplicate name is a conflict", func() {
			deps.err = fmt.Errorf("candidate exists: %w", repository.ErrDuplicateName)
			rec := doRequest(mux, http.MethodPost, "/candidates", map[string]string{"name": "Luna"})
			So(rec.Code, ShouldEqual, http.StatusConflict)
			So(rec.Body.String(), ShouldContainSubstring, "duplicate_name")
		})
	})
}

func TestSuggestionsEndpoint(t *testing.T) {
	Convey("Given the suggestions route", t, func() {
		deps := &mockDeps{report: suggest.Report{
			Proposed: []string{"Nova", "Luna"},
			Added:    1,
			Skipped:  1,
		}}
		mux := newTestMux(deps)

		Convey("a successful run returns the report", func() {
			rec := doRequest(mux, http.MethodPost, "/suggestions", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var got suggest.Report
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got.Added, ShouldEqual, 1)
			So(got.Skipped, ShouldEqual, 1)
		})

		Convey("a disabled intake is 501", func() {
			deps.err = suggest.ErrDisabled
			rec := doRequest(mux, http.MethodPost, "/suggestions", nil)
			So(rec.Code, ShouldEqual, http.StatusNotImplemented)
		})

		Convey("no feedback is 422", func() {
			deps.err = suggest.ErrNoFeedback
			rec := doRequest(mux, http.MethodPost, "/suggestions", nil)
			So(rec.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("an unreachable generator is 502", func() {
			deps.err = fmt.Errorf("call failed: %w", suggest.ErrUnavailable)
			rec := doRequest(mux, http.MethodPost, "/suggestions", nil)
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(rec.Body.String(), ShouldContainSubstring, "unavailable")
		})

		Convey("a garbled generator payload is 502", func() {
			deps.err = fmt.Errorf("call failed: %w", suggest.ErrBadPayload)
			rec := doRequest(mux, http.MethodPost, "/suggestions", nil)
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(rec.Body.String(), ShouldContainSubstring, "bad_payload")
		})

		Convey("GET is not found", func() {
			rec := doRequest(mux, http.MethodGet, "/suggestions", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
