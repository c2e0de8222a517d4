package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/namedeck/namedeck/internal/domain/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh sqlite store", t, func() {
		store := newTestSQLite(t)

		Convey("reviewers round-trip with unique names", func() {
			r, err := store.AddReviewer(ctx, "Kyle")
			So(err, ShouldBeNil)

			got, err := store.ReviewerByName(ctx, "Kyle")
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, r.ID)

			_, err = store.AddReviewer(ctx, "Kyle")
			So(err, ShouldWrap, ErrDuplicateName)
		})

		Convey("candidates round-trip with all fields", func() {
			c, err := store.AddCandidate(ctx, model.Candidate{
				Name:    "Luna",
				Gender:  "girl",
				Origin:  "Latin",
				Meaning: "moon",
			})
			So(err, ShouldBeNil)
			So(c.ID, ShouldNotBeEmpty)

			got, err := store.CandidateByID(ctx, c.ID)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Luna")
			So(got.Origin, ShouldEqual, "Latin")
			So(got.Meaning, ShouldEqual, "moon")

			_, err = store.AddCandidate(ctx, model.Candidate{Name: "Luna"})
			So(err, ShouldWrap, ErrDuplicateName)

			n, err := store.CountCandidates(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})

		Convey("swipes round-trip and keep the caller's timestamp", func() {
			rv, _ := store.AddReviewer(ctx, "Emily")
			cand, _ := store.AddCandidate(ctx, model.Candidate{Name: "Theo"})
			ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

			sw, err := store.AppendSwipe(ctx, model.SwipeEvent{
				ReviewerID:  rv.ID,
				CandidateID: cand.ID,
				Decision:    model.DecisionDislike,
				TS:          ts,
			})
			So(err, ShouldBeNil)
			So(sw.ID, ShouldNotBeEmpty)

			got, err := store.SwipesByReviewer(ctx, rv.ID)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Decision, ShouldEqual, model.DecisionDislike)
			So(got[0].TS.Equal(ts), ShouldBeTrue)

			has, err := store.HasSwipe(ctx, rv.ID, cand.ID)
			So(err, ShouldBeNil)
			So(has, ShouldBeTrue)

			has, err = store.HasSwipe(ctx, rv.ID, "missing")
			So(err, ShouldBeNil)
			So(has, ShouldBeFalse)
		})

		Convey("the same pair can be swiped repeatedly", func() {
			rv, _ := store.AddReviewer(ctx, "Emily")
			cand, _ := store.AddCandidate(ctx, model.Candidate{Name: "Theo"})

			for i := 0; i < 3; i++ {
				_, err := store.AppendSwipe(ctx, model.SwipeEvent{
					ReviewerID:  rv.ID,
					CandidateID: cand.ID,
					Decision:    model.DecisionMaybe,
					TS:          time.Now().UTC(),
				})
				So(err, ShouldBeNil)
			}
			n, err := store.CountSwipes(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)
		})

		Convey("unknown ids return ErrNotFound", func() {
			_, err := store.ReviewerByID(ctx, "missing")
			So(err, ShouldWrap, ErrNotFound)
			_, err = store.CandidateByID(ctx, "missing")
			So(err, ShouldWrap, ErrNotFound)
		})
	})

	Convey("Reopening the same file keeps the data", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "persist.db")

		store, err := NewSQLite(path)
		So(err, ShouldBeNil)
		_, err = store.AddCandidate(ctx, model.Candidate{Name: "Iris"})
		So(err, ShouldBeNil)
		So(store.Close(), ShouldBeNil)

		reopened, err := NewSQLite(path)
		So(err, ShouldBeNil)
		defer reopened.Close()

		got, err := reopened.CandidateByName(ctx, "Iris")
		So(err, ShouldBeNil)
		So(got.Name, ShouldEqual, "Iris")
	})
}
