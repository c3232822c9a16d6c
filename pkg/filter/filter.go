// Package filter defines the canonical annotation filter tree handed to the
// execution engine, and the annotation script that carries it.
package filter

import "github.com/clonobrowser/annotator/pkg/column"

// Tag is the discriminant of a canonical filter
type Tag string

// Canonical filter tags
const (
	TagPattern             Tag = "pattern"
	TagIsNA                Tag = "isNA"
	TagNumericalComparison Tag = "numericalComparison"
	TagOr                  Tag = "or"
	TagAnd                 Tag = "and"
	TagNot                 Tag = "not"
)

// Tags lists every canonical tag
var Tags = []Tag{TagPattern, TagIsNA, TagNumericalComparison, TagOr, TagAnd, TagNot} //nolint:gochecknoglobals // closed set

// Valid reports whether t is a canonical tag
func (t Tag) Valid() bool {
	for _, tag := range Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// Filter is a node of the canonical filter tree.
// The set of implementations is closed: *Pattern, *IsNA, *NumericalComparison,
// *Or, *And and *Not.
type Filter interface {
	Type() Tag

	filterMarker()
}

// PredicateType selects how a pattern is matched
type PredicateType string

// Pattern predicate types
const (
	PredicateEquals             PredicateType = "equals"
	PredicateContainSubsequence PredicateType = "containSubsequence"
)

// Valid reports whether p is a known predicate type
func (p PredicateType) Valid() bool {
	return p == PredicateEquals || p == PredicateContainSubsequence
}

// Predicate is the match applied by a pattern filter
type Predicate struct {
	Type  PredicateType `json:"type"`
	Value string        `json:"value"`
}

// Pattern tests a string or sequence column against an exact or substring match
type Pattern struct {
	Column    column.ID
	Predicate Predicate
}

// IsNA matches records where the column has no value
type IsNA struct {
	Column column.ID
}

// NumericalComparison matches records where LHS + MinDiff < RHS, or <= when
// AllowEqual is set. A nil MinDiff is treated as 0 by the engine.
type NumericalComparison struct {
	LHS        Operand
	RHS        Operand
	MinDiff    *float64
	AllowEqual bool
}

// Or matches when any child matches
type Or struct {
	Filters []Filter
}

// And matches when every child matches
type And struct {
	Filters []Filter
}

// Not negates its child
type Not struct {
	Filter Filter
}

// Type implements Filter
func (*Pattern) Type() Tag { return TagPattern }

// Type implements Filter
func (*IsNA) Type() Tag { return TagIsNA }

// Type implements Filter
func (*NumericalComparison) Type() Tag { return TagNumericalComparison }

// Type implements Filter
func (*Or) Type() Tag { return TagOr }

// Type implements Filter
func (*And) Type() Tag { return TagAnd }

// Type implements Filter
func (*Not) Type() Tag { return TagNot }

func (*Pattern) filterMarker()             {}
func (*IsNA) filterMarker()                {}
func (*NumericalComparison) filterMarker() {}
func (*Or) filterMarker()                  {}
func (*And) filterMarker()                 {}
func (*Not) filterMarker()                 {}

// Float returns a pointer to v, for optional fields such as MinDiff
func Float(v float64) *float64 {
	return &v
}
