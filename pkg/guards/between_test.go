package guards

import (
	"testing"

	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBetween(t *testing.T) {
	tests := []struct {
		name         string
		minInclusive bool
		maxInclusive bool
	}{
		{name: "closed", minInclusive: true, maxInclusive: true},
		{name: "open", minInclusive: false, maxInclusive: false},
		{name: "half open low", minInclusive: true, maxInclusive: false},
		{name: "half open high", minInclusive: false, maxInclusive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBetween("count", 1, 10, tt.minInclusive, tt.maxInclusive)
			require.True(t, IsBetween(f))

			b, ok := BetweenBounds(f)
			require.True(t, ok)
			assert.Equal(t, Between{
				Column:       "count",
				Min:          1,
				Max:          10,
				MinInclusive: tt.minInclusive,
				MaxInclusive: tt.maxInclusive,
			}, b)
			assert.Equal(t, f, b.Filter())
		})
	}
}

func TestBetweenRequiresSameColumn(t *testing.T) {
	f := NewBetween("count", 1, 10, true, true)
	require.True(t, IsBetween(f))

	lower, ok := f.Filters[0].(*filter.NumericalComparison)
	require.True(t, ok)

	lower.RHS = filter.ColumnRef("other")
	assert.False(t, IsBetween(f))

	f = NewBetween("count", 1, 10, true, true)

	upper, ok := f.Filters[1].(*filter.NumericalComparison)
	require.True(t, ok)

	upper.LHS = filter.ColumnRef("other")
	assert.False(t, IsBetween(f))
}

func TestIsBetweenRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{
			name:  "bounds swapped",
			input: &filter.And{Filters: NewBetween("a", 1, 2, true, true).Filters[1:]},
		},
		{
			name: "reversed order",
			input: &filter.And{Filters: []filter.Filter{
				NewBetween("a", 1, 2, true, true).Filters[1],
				NewBetween("a", 1, 2, true, true).Filters[0],
			}},
		},
		{
			name:  "or instead of and",
			input: &filter.Or{Filters: NewBetween("a", 1, 2, true, true).Filters},
		},
		{
			name: "three children",
			input: &filter.And{Filters: append(NewBetween("a", 1, 2, true, true).Filters,
				&filter.IsNA{Column: "a"})},
		},
		{
			name: "min diff on bound",
			input: &filter.And{Filters: []filter.Filter{
				&filter.NumericalComparison{LHS: filter.Constant(1), RHS: filter.ColumnRef("a"), MinDiff: filter.Float(1)},
				&filter.NumericalComparison{LHS: filter.ColumnRef("a"), RHS: filter.Constant(2)},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsBetween(tt.input))
		})
	}
}
