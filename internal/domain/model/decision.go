package model

import "fmt"

// Decision is the closed set of swipe outcomes. It is a tagged value,
// not an open string: every switch over it in the domain packages
// covers all four members.
type Decision string

const (
	DecisionLike      Decision = "like"
	DecisionDislike   Decision = "dislike"
	DecisionSuperlike Decision = "superlike"
	DecisionMaybe     Decision = "maybe"
)

// ParseDecision validates raw input against the closed set.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionLike, DecisionDislike, DecisionSuperlike, DecisionMaybe:
		return Decision(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDecision, s)
	}
}

// Valid reports whether d is a member of the closed set.
func (d Decision) Valid() bool {
	_, err := ParseDecision(string(d))
	return err == nil
}

// Positive reports whether the decision expresses interest.
// Superlikes count as likes everywhere in the domain logic.
func (d Decision) Positive() bool {
	return d == DecisionLike || d == DecisionSuperlike
}
