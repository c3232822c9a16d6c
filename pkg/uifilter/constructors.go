package uifilter

import "github.com/clonobrowser/annotator/pkg/column"

// NewIsNA returns an isNA filter
func NewIsNA(col column.ID) *IsNA {
	return &IsNA{Column: col}
}

// NewIsNotNA returns an isNotNA filter
func NewIsNotNA(col column.ID) *IsNotNA {
	return &IsNotNA{Column: col}
}

// NewPatternEquals returns a patternEquals filter
func NewPatternEquals(col column.ID, value string) *PatternEquals {
	return &PatternEquals{Column: col, Value: value}
}

// NewPatternNotEquals returns a patternNotEquals filter
func NewPatternNotEquals(col column.ID, value string) *PatternNotEquals {
	return &PatternNotEquals{Column: col, Value: value}
}

// NewPatternContainSubsequence returns a patternContainSubsequence filter
func NewPatternContainSubsequence(col column.ID, value string) *PatternContainSubsequence {
	return &PatternContainSubsequence{Column: col, Value: value}
}

// NewPatternNotContainSubsequence returns a patternNotContainSubsequence filter
func NewPatternNotContainSubsequence(col column.ID, value string) *PatternNotContainSubsequence {
	return &PatternNotContainSubsequence{Column: col, Value: value}
}

// NewLessThan returns col < rhs
func NewLessThan(col column.ID, rhs float64) *LessThan {
	return &LessThan{Column: col, RHS: rhs}
}

// NewLessThanOrEqual returns col <= rhs
func NewLessThanOrEqual(col column.ID, rhs float64) *LessThanOrEqual {
	return &LessThanOrEqual{Column: col, RHS: rhs}
}

// NewGreaterThan returns lhs < col
func NewGreaterThan(col column.ID, lhs float64) *GreaterThan {
	return &GreaterThan{Column: col, LHS: lhs}
}

// NewGreaterThanOrEqual returns lhs <= col
func NewGreaterThanOrEqual(col column.ID, lhs float64) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{Column: col, LHS: lhs}
}

// NewLessThanColumn returns lhs < rhs
func NewLessThanColumn(lhs, rhs column.ID) *LessThanColumn {
	return &LessThanColumn{LHS: lhs, RHS: rhs}
}

// NewLessThanColumnOrEqual returns lhs <= rhs
func NewLessThanColumnOrEqual(lhs, rhs column.ID) *LessThanColumnOrEqual {
	return &LessThanColumnOrEqual{LHS: lhs, RHS: rhs}
}

// NewTopN keeps the n records ranked highest by col, or lowest when descending is false
func NewTopN(col column.ID, n float64, descending bool) *TopN {
	return &TopN{Column: col, N: n, Descending: descending}
}

// NewAnd returns the conjunction of filters
func NewAnd(filters ...Filter) *And {
	if filters == nil {
		filters = []Filter{}
	}

	return &And{Filters: filters}
}

// NewOr returns the disjunction of filters
func NewOr(filters ...Filter) *Or {
	if filters == nil {
		filters = []Filter{}
	}

	return &Or{Filters: filters}
}

// NewNot negates f. Negations that have a dedicated UI variant are folded
// into it, so not(isNA) becomes isNotNA.
func NewNot(f Filter) Filter {
	switch v := f.(type) {
	case *IsNA:
		return NewIsNotNA(v.Column)
	case *PatternEquals:
		return NewPatternNotEquals(v.Column, v.Value)
	case *PatternContainSubsequence:
		return NewPatternNotContainSubsequence(v.Column, v.Value)
	}

	return &Not{Filter: f}
}

// WithMinDiff sets the minimum difference of a comparison and returns it.
// Filters without a minimum difference are returned unchanged.
func WithMinDiff(f Filter, minDiff float64) Filter {
	d := &minDiff

	switch v := f.(type) {
	case *LessThan:
		v.MinDiff = d
	case *LessThanOrEqual:
		v.MinDiff = d
	case *GreaterThan:
		v.MinDiff = d
	case *GreaterThanOrEqual:
		v.MinDiff = d
	case *LessThanColumn:
		v.MinDiff = d
	case *LessThanColumnOrEqual:
		v.MinDiff = d
	}

	return f
}
