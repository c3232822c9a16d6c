// Package uifilter is the editor-facing subset of the canonical filter tree and
// the bidirectional mapping between the two.
//
// Every UI filter compiles to exactly one canonical shape, and parsing that
// shape returns the original UI filter.
package uifilter

import "github.com/clonobrowser/annotator/pkg/column"

// Type is the discriminant of a UI filter
type Type string

// UI filter types
const (
	TypeIsNA                         Type = "isNA"
	TypeIsNotNA                      Type = "isNotNA"
	TypePatternEquals                Type = "patternEquals"
	TypePatternNotEquals             Type = "patternNotEquals"
	TypePatternContainSubsequence    Type = "patternContainSubsequence"
	TypePatternNotContainSubsequence Type = "patternNotContainSubsequence"
	TypeLessThan                     Type = "lessThan"
	TypeLessThanOrEqual              Type = "lessThanOrEqual"
	TypeGreaterThan                  Type = "greaterThan"
	TypeGreaterThanOrEqual           Type = "greaterThanOrEqual"
	TypeLessThanColumn               Type = "lessThanColumn"
	TypeLessThanColumnOrEqual        Type = "lessThanColumnOrEqual"
	TypeTopN                         Type = "topN"
	TypeAnd                          Type = "and"
	TypeOr                           Type = "or"
	TypeNot                          Type = "not"
)

// Filter is a node of a UI filter tree
type Filter interface {
	Type() Type

	uiFilterMarker()
}

// IsNA matches records where Column has no value
type IsNA struct {
	Column column.ID `json:"column"`
}

// IsNotNA matches records where Column has a value
type IsNotNA struct {
	Column column.ID `json:"column"`
}

// PatternEquals matches Column exactly against Value
type PatternEquals struct {
	Column column.ID `json:"column"`
	Value  string    `json:"value"`
}

// PatternNotEquals is the negation of PatternEquals
type PatternNotEquals struct {
	Column column.ID `json:"column"`
	Value  string    `json:"value"`
}

// PatternContainSubsequence matches when Column contains Value
type PatternContainSubsequence struct {
	Column column.ID `json:"column"`
	Value  string    `json:"value"`
}

// PatternNotContainSubsequence is the negation of PatternContainSubsequence
type PatternNotContainSubsequence struct {
	Column column.ID `json:"column"`
	Value  string    `json:"value"`
}

// LessThan matches Column + MinDiff < RHS
type LessThan struct {
	Column  column.ID `json:"column"`
	RHS     float64   `json:"rhs"`
	MinDiff *float64  `json:"minDiff,omitempty"`
}

// LessThanOrEqual matches Column + MinDiff <= RHS
type LessThanOrEqual struct {
	Column  column.ID `json:"column"`
	RHS     float64   `json:"rhs"`
	MinDiff *float64  `json:"minDiff,omitempty"`
}

// GreaterThan matches LHS + MinDiff < Column
type GreaterThan struct {
	Column  column.ID `json:"column"`
	LHS     float64   `json:"lhs"`
	MinDiff *float64  `json:"minDiff,omitempty"`
}

// GreaterThanOrEqual matches LHS + MinDiff <= Column
type GreaterThanOrEqual struct {
	Column  column.ID `json:"column"`
	LHS     float64   `json:"lhs"`
	MinDiff *float64  `json:"minDiff,omitempty"`
}

// LessThanColumn matches LHS + MinDiff < RHS for two columns
type LessThanColumn struct {
	LHS     column.ID `json:"lhs"`
	RHS     column.ID `json:"rhs"`
	MinDiff *float64  `json:"minDiff,omitempty"`
}

// LessThanColumnOrEqual matches LHS + MinDiff <= RHS for two columns
type LessThanColumnOrEqual struct {
	LHS     column.ID `json:"lhs"`
	RHS     column.ID `json:"rhs"`
	MinDiff *float64  `json:"minDiff,omitempty"`
}

// TopN keeps the N records ranked highest (or lowest when not Descending) by Column
type TopN struct {
	Column     column.ID `json:"column"`
	N          float64   `json:"n"`
	Descending bool      `json:"descending"`
}

// And matches when every child matches
type And struct {
	Filters []Filter `json:"filters"`
}

// Or matches when any child matches
type Or struct {
	Filters []Filter `json:"filters"`
}

// Not negates its child
type Not struct {
	Filter Filter `json:"filter"`
}

// Type implements Filter
func (*IsNA) Type() Type { return TypeIsNA }

// Type implements Filter
func (*IsNotNA) Type() Type { return TypeIsNotNA }

// Type implements Filter
func (*PatternEquals) Type() Type { return TypePatternEquals }

// Type implements Filter
func (*PatternNotEquals) Type() Type { return TypePatternNotEquals }

// Type implements Filter
func (*PatternContainSubsequence) Type() Type { return TypePatternContainSubsequence }

// Type implements Filter
func (*PatternNotContainSubsequence) Type() Type { return TypePatternNotContainSubsequence }

// Type implements Filter
func (*LessThan) Type() Type { return TypeLessThan }

// Type implements Filter
func (*LessThanOrEqual) Type() Type { return TypeLessThanOrEqual }

// Type implements Filter
func (*GreaterThan) Type() Type { return TypeGreaterThan }

// Type implements Filter
func (*GreaterThanOrEqual) Type() Type { return TypeGreaterThanOrEqual }

// Type implements Filter
func (*LessThanColumn) Type() Type { return TypeLessThanColumn }

// Type implements Filter
func (*LessThanColumnOrEqual) Type() Type { return TypeLessThanColumnOrEqual }

// Type implements Filter
func (*TopN) Type() Type { return TypeTopN }

// Type implements Filter
func (*And) Type() Type { return TypeAnd }

// Type implements Filter
func (*Or) Type() Type { return TypeOr }

// Type implements Filter
func (*Not) Type() Type { return TypeNot }

func (*IsNA) uiFilterMarker()                         {}
func (*IsNotNA) uiFilterMarker()                      {}
func (*PatternEquals) uiFilterMarker()                {}
func (*PatternNotEquals) uiFilterMarker()             {}
func (*PatternContainSubsequence) uiFilterMarker()    {}
func (*PatternNotContainSubsequence) uiFilterMarker() {}
func (*LessThan) uiFilterMarker()                     {}
func (*LessThanOrEqual) uiFilterMarker()              {}
func (*GreaterThan) uiFilterMarker()                  {}
func (*GreaterThanOrEqual) uiFilterMarker()           {}
func (*LessThanColumn) uiFilterMarker()               {}
func (*LessThanColumnOrEqual) uiFilterMarker()        {}
func (*TopN) uiFilterMarker()                         {}
func (*And) uiFilterMarker()                          {}
func (*Or) uiFilterMarker()                           {}
func (*Not) uiFilterMarker()                          {}

// IsCombinator reports whether f is an And or an Or
func IsCombinator(f Filter) bool {
	switch f.(type) {
	case *And, *Or:
		return true
	}

	return false
}

// Children returns the direct children of a combinator, or nil for leaves
func Children(f Filter) []Filter {
	switch v := f.(type) {
	case *And:
		return v.Filters
	case *Or:
		return v.Filters
	case *Not:
		return []Filter{v.Filter}
	}

	return nil
}
