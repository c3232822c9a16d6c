package guards

import (
	"encoding/json"
	"testing"

	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}

	return m
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{name: "less than", input: `{"type":"numericalComparison","lhs":"a","rhs":10}`, want: KindLessThan},
		{name: "less than with explicit false", input: `{"type":"numericalComparison","lhs":"a","rhs":10,"allowEqual":false}`, want: KindLessThan},
		{name: "less than with min diff", input: `{"type":"numericalComparison","lhs":"a","rhs":10,"minDiff":2}`, want: KindLessThan},
		{name: "less than or equal", input: `{"type":"numericalComparison","lhs":"a","rhs":10,"allowEqual":true}`, want: KindLessThanOrEqual},
		{name: "greater than", input: `{"type":"numericalComparison","lhs":5,"rhs":"a"}`, want: KindGreaterThan},
		{name: "greater than or equal", input: `{"type":"numericalComparison","lhs":5,"rhs":"a","allowEqual":true}`, want: KindGreaterThanOrEqual},
		{name: "column vs column", input: `{"type":"numericalComparison","lhs":"a","rhs":"b"}`, want: KindLessThanColumn},
		{name: "column vs column or equal", input: `{"type":"numericalComparison","lhs":"a","rhs":"b","allowEqual":true}`, want: KindLessThanColumnOrEqual},
		{
			name:  "top n",
			input: `{"type":"numericalComparison","lhs":{"transformer":"rank","column":"a","descending":true},"rhs":10,"allowEqual":true}`,
			want:  KindTopN,
		},
		{
			name:  "bottom n",
			input: `{"type":"numericalComparison","lhs":{"transformer":"rank","column":"a","descending":false},"rhs":10,"allowEqual":true}`,
			want:  KindTopN,
		},
		{
			name:  "top cumulative share",
			input: `{"type":"numericalComparison","lhs":{"transformer":"sortedCumulativeSum","column":"a","descending":true},"rhs":0.5,"allowEqual":true}`,
			want:  KindTopCumulativeShare,
		},
		{
			name:  "rank without allowEqual",
			input: `{"type":"numericalComparison","lhs":{"transformer":"rank","column":"a","descending":true},"rhs":10}`,
			want:  KindNone,
		},
		{
			name:  "rank without descending",
			input: `{"type":"numericalComparison","lhs":{"transformer":"rank","column":"a"},"rhs":10,"allowEqual":true}`,
			want:  KindNone,
		},
		{
			name:  "rank with min diff",
			input: `{"type":"numericalComparison","lhs":{"transformer":"rank","column":"a","descending":true},"rhs":10,"allowEqual":true,"minDiff":1}`,
			want:  KindNone,
		},
		{
			name:  "log10 transform",
			input: `{"type":"numericalComparison","lhs":{"transformer":"log10","column":"a"},"rhs":2}`,
			want:  KindNone,
		},
		{
			name:  "cumulative sum on right",
			input: `{"type":"numericalComparison","lhs":0.5,"rhs":{"transformer":"sortedCumulativeSum","column":"a","descending":true},"allowEqual":true}`,
			want:  KindNone,
		},
		{name: "string allowEqual", input: `{"type":"numericalComparison","lhs":"a","rhs":10,"allowEqual":"yes"}`, want: KindNone},
		{name: "string minDiff", input: `{"type":"numericalComparison","lhs":"a","rhs":10,"minDiff":"1"}`, want: KindNone},
		{name: "two constants", input: `{"type":"numericalComparison","lhs":1,"rhs":10}`, want: KindNone},
		{name: "other tag", input: `{"type":"isNA","column":"a"}`, want: KindNone},
		{name: "no tag", input: `{"lhs":"a","rhs":10}`, want: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := decode(t, tt.input)
			assert.Equal(t, tt.want, Classify(v))

			// Exclusivity: at most one comparison guard holds.
			assert.LessOrEqual(t, len(Matches(v)), 1)

			// Raw bytes classify the same way.
			assert.Equal(t, tt.want, Classify(json.RawMessage(tt.input)))
		})
	}
}

func TestClassifyTypedFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter filter.Filter
		want   Kind
	}{
		{
			name:   "less than",
			filter: &filter.NumericalComparison{LHS: filter.ColumnRef("a"), RHS: filter.Constant(3)},
			want:   KindLessThan,
		},
		{
			name:   "greater than or equal",
			filter: &filter.NumericalComparison{LHS: filter.Constant(3), RHS: filter.ColumnRef("a"), AllowEqual: true},
			want:   KindGreaterThanOrEqual,
		},
		{
			name: "top n",
			filter: &filter.NumericalComparison{
				LHS:        &filter.Transform{Transformer: filter.TransformerRank, Column: "a", Descending: true},
				RHS:        filter.Constant(5),
				AllowEqual: true,
			},
			want: KindTopN,
		},
		{
			name:   "unencodable comparison",
			filter: &filter.NumericalComparison{LHS: filter.Constant(1), RHS: filter.Constant(2)},
			want:   KindNone,
		},
		{
			name:   "not a comparison",
			filter: &filter.IsNA{Column: "a"},
			want:   KindNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.filter))
		})
	}
}

func TestGuardsAreTotal(t *testing.T) {
	garbage := []any{
		nil,
		42,
		"numericalComparison",
		[]any{1, 2},
		map[string]any{},
		map[string]any{"type": 7},
		map[string]any{"type": "numericalComparison", "lhs": nil, "rhs": nil},
		map[string]any{"type": "not", "filter": "isNA"},
		map[string]any{"type": "and", "filters": "x"},
		[]byte("{"),
	}

	guards := []func(any) bool{
		IsNA, IsNotNA, IsLessThan, IsLessThanOrEqual, IsGreaterThan, IsGreaterThanOrEqual,
		IsLessThanColumn, IsLessThanColumnOrEqual, IsTopN, IsTopCumulativeShare, IsBetween,
	}

	for _, v := range garbage {
		for _, guard := range guards {
			assert.NotPanics(t, func() {
				assert.False(t, guard(v))
			})
		}

		assert.Equal(t, KindNone, Classify(v))
	}
}

func TestNAAndPatternGuards(t *testing.T) {
	isNA := decode(t, `{"type":"isNA","column":"a"}`)
	notNA := decode(t, `{"type":"not","filter":{"type":"isNA","column":"a"}}`)
	equals := decode(t, `{"type":"pattern","column":"a","predicate":{"type":"equals","value":"CAS"}}`)
	notContains := decode(t, `{"type":"not","filter":{"type":"pattern","column":"a","predicate":{"type":"containSubsequence","value":"CAS"}}}`)

	assert.True(t, IsNA(isNA))
	assert.False(t, IsNotNA(isNA))
	assert.True(t, IsNotNA(notNA))
	assert.False(t, IsNA(notNA))
	assert.False(t, IsNA(decode(t, `{"type":"isNA"}`)))

	assert.True(t, IsPattern(equals, filter.PredicateEquals))
	assert.False(t, IsPattern(equals, filter.PredicateContainSubsequence))
	assert.True(t, IsNotPattern(notContains, filter.PredicateContainSubsequence))
	assert.False(t, IsNotPattern(notContains, filter.PredicateEquals))
	assert.False(t, IsPattern(notContains, filter.PredicateContainSubsequence))

	assert.True(t, IsNotNA(&filter.Not{Filter: &filter.IsNA{Column: "a"}}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "topN", KindTopN.String())
	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
