package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDecision(t *testing.T) {
	Convey("Every member of the closed set parses", t, func() {
		for _, raw := range []string{"like", "dislike", "superlike", "maybe"} {
			d, err := ParseDecision(raw)
			So(err, ShouldBeNil)
			So(string(d), ShouldEqual, raw)
			So(d.Valid(), ShouldBeTrue)
		}
	})

	Convey("Anything outside the set is rejected", t, func() {
		for _, raw := range []string{"", "love", "LIKE", "Like ", "yes"} {
			_, err := ParseDecision(raw)
			So(err, ShouldWrap, ErrUnknownDecision)
		}
		So(Decision("love").Valid(), ShouldBeFalse)
	})
}

func TestDecisionPositive(t *testing.T) {
	Convey("Likes and superlikes are positive, the rest are not", t, func() {
		So(DecisionLike.Positive(), ShouldBeTrue)
		So(DecisionSuperlike.Positive(), ShouldBeTrue)
		So(DecisionDislike.Positive(), ShouldBeFalse)
		So(DecisionMaybe.Positive(), ShouldBeFalse)
	})
}
