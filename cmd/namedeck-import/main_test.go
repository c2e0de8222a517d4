package main

import (
	"bufio"
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/namedeck/namedeck/internal/adapters/repository"
	"github.com/namedeck/namedeck/internal/domain/model"
)

func TestParseVerdict(t *testing.T) {
	Convey("Legacy cells map onto decisions", t, func() {
		cases := []struct {
			cell string
			want model.Decision
			ok   bool
		}{
			{"Y", model.DecisionLike, true},
			{"y", model.DecisionLike, true},
			{" Y ", model.DecisionLike, true},
			{"Y - middle name?", model.DecisionLike, true},
			{"N", model.DecisionDislike, true},
			{"n!", model.DecisionDislike, true},
			{"M", model.DecisionMaybe, true},
			{"m?", model.DecisionMaybe, true},
			{"", "", false},
			{"?", "", false},
			{"-", "", false},
		}
		for _, tc := range cases {
			got, ok := parseVerdict(tc.cell)
			So(ok, ShouldEqual, tc.ok)
			So(got, ShouldEqual, tc.want)
		}
	})
}

func TestImportSheet(t *testing.T) {
	ctx := context.Background()

	scan := func(s string) *bufio.Scanner { return bufio.NewScanner(strings.NewReader(s)) }

	Convey("Given a legacy sheet", t, func() {
		store := repository.NewMemory()
		sheet := "Name\tEmily\tKyle\n" +
			"Luna\tY\tY\n" +
			"Bertha\tN\tN\n" +
			"Theo\tM\t\n" +
			"\tY\tY\n"

		Convey("all rows land in the store", func() {
			stats, err := importSheet(ctx, store, scan(sheet))
			So(err, ShouldBeNil)
			So(stats.candidatesCreated, ShouldEqual, 3)
			So(stats.swipesRecorded, ShouldEqual, 5)
			So(stats.rowsSkipped, ShouldEqual, 1)

			reviewers, _ := store.ListReviewers(ctx)
			So(reviewers, ShouldHaveLength, 2)

			n, _ := store.CountSwipes(ctx)
			So(n, ShouldEqual, 5)
		})

		Convey("re-running is a no-op for already swiped pairs", func() {
			_, err := importSheet(ctx, store, scan(sheet))
			So(err, ShouldBeNil)

			stats, err := importSheet(ctx, store, scan(sheet))
			So(err, ShouldBeNil)
			So(stats.candidatesCreated, ShouldEqual, 0)
			So(stats.swipesRecorded, ShouldEqual, 0)

			n, _ := store.CountSwipes(ctx)
			So(n, ShouldEqual, 5)
		})

		Convey("existing reviewers are reused, not duplicated", func() {
			_, err := store.AddReviewer(ctx, "Emily")
			So(err, ShouldBeNil)

			_, err = importSheet(ctx, store, scan(sheet))
			So(err, ShouldBeNil)

			reviewers, _ := store.ListReviewers(ctx)
			So(reviewers, ShouldHaveLength, 2)
		})
	})

	Convey("Broken sheets are rejected", t, func() {
		store := repository.NewMemory()

		Convey("an empty sheet", func() {
			_, err := importSheet(ctx, store, scan(""))
			So(err, ShouldNotBeNil)
		})

		Convey("a header without reviewer columns", func() {
			_, err := importSheet(ctx, store, scan("Name\n"))
			So(err, ShouldNotBeNil)
		})
	})
}
