package uifilter

import (
	"errors"
	"fmt"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/guards"
)

// Parse converts a canonical filter into its UI form.
//
// Canonical filters outside the UI subset fail with ErrUnsupportedFilterShape;
// values that are not canonical filters fail with ErrUnrecognizedFilterTag.
func Parse(f filter.Filter) (Filter, error) {
	if f != nil && isNilCanonical(f) {
		return nil, fmt.Errorf("%w: nil %s", ErrMissingFilter, f.Type())
	}

	switch v := f.(type) {
	case *filter.IsNA:
		return NewIsNA(v.Column), nil
	case *filter.Pattern:
		return parsePattern(v)
	case *filter.NumericalComparison:
		return parseComparison(v)
	case *filter.And:
		children, err := parseAll(v.Filters)
		if err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}

		return &And{Filters: children}, nil
	case *filter.Or:
		children, err := parseAll(v.Filters)
		if err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}

		return &Or{Filters: children}, nil
	case *filter.Not:
		return parseNot(v)
	case nil:
		return nil, fmt.Errorf("%w: nil filter", ErrUnrecognizedFilterTag)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedFilterTag, f.Type())
}

// ParseJSON decodes a canonical JSON filter and parses it
func ParseJSON(data []byte) (Filter, error) {
	f, err := filter.Unmarshal(data)
	if err != nil {
		if errors.Is(err, filter.ErrUnrecognizedTag) {
			return nil, fmt.Errorf("%w: %w", ErrUnrecognizedFilterTag, err)
		}

		return nil, err
	}

	return Parse(f)
}

func parseAll(filters []filter.Filter) ([]Filter, error) {
	out := make([]Filter, 0, len(filters))

	for i, f := range filters {
		parsed, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, err)
		}

		out = append(out, parsed)
	}

	return out, nil
}

func parsePattern(p *filter.Pattern) (Filter, error) {
	switch p.Predicate.Type {
	case filter.PredicateEquals:
		return NewPatternEquals(p.Column, p.Predicate.Value), nil
	case filter.PredicateContainSubsequence:
		return NewPatternContainSubsequence(p.Column, p.Predicate.Value), nil
	}

	return nil, fmt.Errorf("%w: pattern predicate %q", ErrUnsupportedFilterShape, p.Predicate.Type)
}

// parseNot folds the negations that have a dedicated UI variant before
// falling back to a generic not
func parseNot(n *filter.Not) (Filter, error) {
	if n.Filter != nil && isNilCanonical(n.Filter) {
		return nil, fmt.Errorf("not: %w: nil %s", ErrMissingFilter, n.Filter.Type())
	}

	switch child := n.Filter.(type) {
	case nil:
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFilterShape, ErrMissingFilter)
	case *filter.IsNA:
		return NewIsNotNA(child.Column), nil
	case *filter.Pattern:
		switch child.Predicate.Type {
		case filter.PredicateEquals:
			return NewPatternNotEquals(child.Column, child.Predicate.Value), nil
		case filter.PredicateContainSubsequence:
			return NewPatternNotContainSubsequence(child.Column, child.Predicate.Value), nil
		}
	}

	inner, err := Parse(n.Filter)
	if err != nil {
		return nil, fmt.Errorf("not: %w", err)
	}

	return &Not{Filter: inner}, nil
}

func parseComparison(c *filter.NumericalComparison) (Filter, error) {
	if err := finiteOperands(c); err != nil {
		return nil, err
	}

	kind := guards.Classify(c)

	lhsColumn, _ := c.LHS.(filter.ColumnRef)
	rhsColumn, _ := c.RHS.(filter.ColumnRef)
	lhsConstant, _ := c.LHS.(filter.Constant)
	rhsConstant, _ := c.RHS.(filter.Constant)
	minDiff := copyFloat(c.MinDiff)

	switch kind {
	case guards.KindLessThan:
		return &LessThan{Column: columnID(lhsColumn), RHS: float64(rhsConstant), MinDiff: minDiff}, nil
	case guards.KindLessThanOrEqual:
		return &LessThanOrEqual{Column: columnID(lhsColumn), RHS: float64(rhsConstant), MinDiff: minDiff}, nil
	case guards.KindGreaterThan:
		return &GreaterThan{Column: columnID(rhsColumn), LHS: float64(lhsConstant), MinDiff: minDiff}, nil
	case guards.KindGreaterThanOrEqual:
		return &GreaterThanOrEqual{Column: columnID(rhsColumn), LHS: float64(lhsConstant), MinDiff: minDiff}, nil
	case guards.KindLessThanColumn:
		return &LessThanColumn{LHS: columnID(lhsColumn), RHS: columnID(rhsColumn), MinDiff: minDiff}, nil
	case guards.KindLessThanColumnOrEqual:
		return &LessThanColumnOrEqual{LHS: columnID(lhsColumn), RHS: columnID(rhsColumn), MinDiff: minDiff}, nil
	case guards.KindTopN:
		t, ok := c.LHS.(*filter.Transform)
		if !ok || t == nil {
			break
		}

		return NewTopN(t.Column, float64(rhsConstant), t.Descending), nil
	case guards.KindNone, guards.KindTopCumulativeShare:
	}

	return nil, fmt.Errorf("%w: numerical comparison (%s)", ErrUnsupportedFilterShape, describeOperands(c))
}

// finiteOperands rejects comparisons that have no JSON encoding, which the
// guards would otherwise report as an unsupported shape
func finiteOperands(c *filter.NumericalComparison) error {
	for _, op := range []filter.Operand{c.LHS, c.RHS} {
		if v, ok := op.(filter.Constant); ok && !isFinite(float64(v)) {
			return fmt.Errorf("%w: numerical comparison constant %v", ErrNonFiniteNumber, float64(v))
		}
	}

	if c.MinDiff != nil && !isFinite(*c.MinDiff) {
		return fmt.Errorf("%w: numerical comparison minDiff %v", ErrNonFiniteNumber, *c.MinDiff)
	}

	return nil
}

func isNilCanonical(f filter.Filter) bool {
	switch v := f.(type) {
	case *filter.IsNA:
		return v == nil
	case *filter.Pattern:
		return v == nil
	case *filter.NumericalComparison:
		return v == nil
	case *filter.And:
		return v == nil
	case *filter.Or:
		return v == nil
	case *filter.Not:
		return v == nil
	}

	return false
}

func columnID(ref filter.ColumnRef) column.ID {
	return column.ID(ref)
}

func describeOperands(c *filter.NumericalComparison) string {
	return fmt.Sprintf("lhs %s, rhs %s", operandKind(c.LHS), operandKind(c.RHS))
}

func operandKind(op filter.Operand) string {
	switch v := op.(type) {
	case filter.Constant:
		return "constant"
	case filter.ColumnRef:
		return "column"
	case *filter.Transform:
		if v == nil {
			return "missing"
		}

		return string(v.Transformer)
	}

	return "missing"
}
