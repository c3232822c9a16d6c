package uifilter

import (
	"fmt"
	"math"
)

// Check reports whether f can be compiled and encoded: every combinator child
// must be present and every number finite.
func Check(f Filter) error {
	switch v := f.(type) {
	case nil:
		return ErrMissingFilter
	case *IsNA, *IsNotNA, *PatternEquals, *PatternNotEquals,
		*PatternContainSubsequence, *PatternNotContainSubsequence:
		if isNilFilter(f) {
			return ErrMissingFilter
		}

		return nil
	case *LessThan:
		if v == nil {
			return ErrMissingFilter
		}

		return finite(v.Type(), v.RHS, v.MinDiff)
	case *LessThanOrEqual:
		if v == nil {
			return ErrMissingFilter
		}

		return finite(v.Type(), v.RHS, v.MinDiff)
	case *GreaterThan:
		if v == nil {
			return ErrMissingFilter
		}

		return finite(v.Type(), v.LHS, v.MinDiff)
	case *GreaterThanOrEqual:
		if v == nil {
			return ErrMissingFilter
		}

		return finite(v.Type(), v.LHS, v.MinDiff)
	case *LessThanColumn:
		if v == nil {
			return ErrMissingFilter
		}

		return finite(v.Type(), 0, v.MinDiff)
	case *LessThanColumnOrEqual:
		if v == nil {
			return ErrMissingFilter
		}

		return finite(v.Type(), 0, v.MinDiff)
	case *TopN:
		if v == nil {
			return ErrMissingFilter
		}

		return finite(v.Type(), v.N, nil)
	case *And:
		if v == nil {
			return ErrMissingFilter
		}

		return checkAll(v.Type(), v.Filters)
	case *Or:
		if v == nil {
			return ErrMissingFilter
		}

		return checkAll(v.Type(), v.Filters)
	case *Not:
		if v == nil {
			return ErrMissingFilter
		}

		if err := Check(v.Filter); err != nil {
			return fmt.Errorf("not: %w", err)
		}

		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnrecognizedFilterTag, f.Type())
}

// CheckScript runs Check over every step that CompileScript keeps
func CheckScript(s Script) error {
	for i, step := range s.Steps {
		if step.Filter == nil {
			continue
		}

		if err := Check(step.Filter); err != nil {
			return fmt.Errorf("steps[%d] %q: %w", i, step.Label, err)
		}
	}

	return nil
}

func checkAll(t Type, filters []Filter) error {
	for i, child := range filters {
		if err := Check(child); err != nil {
			return fmt.Errorf("%s: filters[%d]: %w", t, i, err)
		}
	}

	return nil
}

func finite(t Type, value float64, minDiff *float64) error {
	if !isFinite(value) {
		return fmt.Errorf("%w: %s value %v", ErrNonFiniteNumber, t, value)
	}

	if minDiff != nil && !isFinite(*minDiff) {
		return fmt.Errorf("%w: %s minDiff %v", ErrNonFiniteNumber, t, *minDiff)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isNilFilter(f Filter) bool {
	switch v := f.(type) {
	case *IsNA:
		return v == nil
	case *IsNotNA:
		return v == nil
	case *PatternEquals:
		return v == nil
	case *PatternNotEquals:
		return v == nil
	case *PatternContainSubsequence:
		return v == nil
	case *PatternNotContainSubsequence:
		return v == nil
	}

	return false
}
