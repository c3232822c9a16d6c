package uifilter

import (
	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/filter"
)

// Compile converts a UI filter into its canonical form. The output depends only
// on the input, so equal inputs always encode to identical bytes.
func Compile(f Filter) filter.Filter {
	switch v := f.(type) {
	case *IsNA:
		return &filter.IsNA{Column: v.Column}
	case *IsNotNA:
		return &filter.Not{Filter: &filter.IsNA{Column: v.Column}}
	case *PatternEquals:
		return pattern(v.Column, filter.PredicateEquals, v.Value)
	case *PatternNotEquals:
		return &filter.Not{Filter: pattern(v.Column, filter.PredicateEquals, v.Value)}
	case *PatternContainSubsequence:
		return pattern(v.Column, filter.PredicateContainSubsequence, v.Value)
	case *PatternNotContainSubsequence:
		return &filter.Not{Filter: pattern(v.Column, filter.PredicateContainSubsequence, v.Value)}
	case *LessThan:
		return &filter.NumericalComparison{
			LHS:     filter.ColumnRef(v.Column),
			RHS:     filter.Constant(v.RHS),
			MinDiff: copyFloat(v.MinDiff),
		}
	case *LessThanOrEqual:
		return &filter.NumericalComparison{
			LHS:        filter.ColumnRef(v.Column),
			RHS:        filter.Constant(v.RHS),
			MinDiff:    copyFloat(v.MinDiff),
			AllowEqual: true,
		}
	case *GreaterThan:
		return &filter.NumericalComparison{
			LHS:     filter.Constant(v.LHS),
			RHS:     filter.ColumnRef(v.Column),
			MinDiff: copyFloat(v.MinDiff),
		}
	case *GreaterThanOrEqual:
		return &filter.NumericalComparison{
			LHS:        filter.Constant(v.LHS),
			RHS:        filter.ColumnRef(v.Column),
			MinDiff:    copyFloat(v.MinDiff),
			AllowEqual: true,
		}
	case *LessThanColumn:
		return &filter.NumericalComparison{
			LHS:     filter.ColumnRef(v.LHS),
			RHS:     filter.ColumnRef(v.RHS),
			MinDiff: copyFloat(v.MinDiff),
		}
	case *LessThanColumnOrEqual:
		return &filter.NumericalComparison{
			LHS:        filter.ColumnRef(v.LHS),
			RHS:        filter.ColumnRef(v.RHS),
			MinDiff:    copyFloat(v.MinDiff),
			AllowEqual: true,
		}
	case *TopN:
		return &filter.NumericalComparison{
			LHS: &filter.Transform{
				Transformer: filter.TransformerRank,
				Column:      v.Column,
				Descending:  v.Descending,
			},
			RHS:        filter.Constant(v.N),
			AllowEqual: true,
		}
	case *And:
		return &filter.And{Filters: compileAll(v.Filters)}
	case *Or:
		return &filter.Or{Filters: compileAll(v.Filters)}
	case *Not:
		return &filter.Not{Filter: Compile(v.Filter)}
	}

	return nil
}

func compileAll(filters []Filter) []filter.Filter {
	out := make([]filter.Filter, 0, len(filters))
	for _, f := range filters {
		out = append(out, Compile(f))
	}

	return out
}

func pattern(col column.ID, predicate filter.PredicateType, value string) *filter.Pattern {
	return &filter.Pattern{
		Column:    col,
		Predicate: filter.Predicate{Type: predicate, Value: value},
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}

	c := *v

	return &c
}
