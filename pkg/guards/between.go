package guards

import (
	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/filter"
)

// Between is a closed or open range on one column, encoded as
// and[greaterThan(OrEqual), lessThan(OrEqual)]
type Between struct {
	Column       column.ID
	Min          float64
	Max          float64
	MinInclusive bool
	MaxInclusive bool
}

// NewBetween builds the canonical range filter for col
func NewBetween(col column.ID, minValue, maxValue float64, minInclusive, maxInclusive bool) *filter.And {
	return Between{
		Column:       col,
		Min:          minValue,
		Max:          maxValue,
		MinInclusive: minInclusive,
		MaxInclusive: maxInclusive,
	}.Filter()
}

// Filter encodes b as a canonical filter
func (b Between) Filter() *filter.And {
	return &filter.And{Filters: []filter.Filter{
		&filter.NumericalComparison{
			LHS:        filter.Constant(b.Min),
			RHS:        filter.ColumnRef(b.Column),
			AllowEqual: b.MinInclusive,
		},
		&filter.NumericalComparison{
			LHS:        filter.ColumnRef(b.Column),
			RHS:        filter.Constant(b.Max),
			AllowEqual: b.MaxInclusive,
		},
	}}
}

// IsBetween matches an and of exactly two comparisons, a lower bound followed by
// an upper bound, on the same column
func IsBetween(v any) bool {
	_, ok := BetweenBounds(v)
	return ok
}

// BetweenBounds extracts the range encoded by v
func BetweenBounds(v any) (Between, bool) {
	m, ok := object(v)
	if !ok || m["type"] != string(filter.TagAnd) {
		return Between{}, false
	}

	children, ok := m["filters"].([]any)
	if !ok || len(children) != 2 {
		return Between{}, false
	}

	lower, ok := comparison(children[0])
	if !ok || !zeroMinDiff(lower) {
		return Between{}, false
	}

	upper, ok := comparison(children[1])
	if !ok || !zeroMinDiff(upper) {
		return Between{}, false
	}

	minInclusive := IsGreaterThanOrEqual(lower)
	if !minInclusive && !IsGreaterThan(lower) {
		return Between{}, false
	}

	maxInclusive := IsLessThanOrEqual(upper)
	if !maxInclusive && !IsLessThan(upper) {
		return Between{}, false
	}

	lowerColumn, _ := stringField(lower, "rhs")
	upperColumn, _ := stringField(upper, "lhs")

	if lowerColumn != upperColumn {
		return Between{}, false
	}

	minValue, _ := number(lower["lhs"])
	maxValue, _ := number(upper["rhs"])

	return Between{
		Column:       column.ID(lowerColumn),
		Min:          minValue,
		Max:          maxValue,
		MinInclusive: minInclusive,
		MaxInclusive: maxInclusive,
	}, true
}
