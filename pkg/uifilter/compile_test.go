package uifilter

import (
	"testing"

	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constructed returns one value of every UI variant, built through the constructors
func constructed() map[string]Filter {
	return map[string]Filter{
		"isNA":                         NewIsNA("a"),
		"isNotNA":                      NewIsNotNA("a"),
		"not isNA folds":               NewNot(NewIsNA("a")),
		"patternEquals":                NewPatternEquals("cdr3", "CASS"),
		"patternNotEquals":             NewPatternNotEquals("cdr3", "CASS"),
		"not patternEquals folds":      NewNot(NewPatternEquals("cdr3", "CASS")),
		"patternContainSubsequence":    NewPatternContainSubsequence("cdr3", "GG"),
		"patternNotContainSubsequence": NewPatternNotContainSubsequence("cdr3", "GG"),
		"lessThan":                     NewLessThan("count", 10),
		"lessThan with minDiff":        WithMinDiff(NewLessThan("count", 10), 2),
		"lessThan with zero minDiff":   WithMinDiff(NewLessThan("count", 10), 0),
		"lessThanOrEqual":              NewLessThanOrEqual("count", 10.5),
		"greaterThan":                  NewGreaterThan("count", 5),
		"greaterThanOrEqual":           WithMinDiff(NewGreaterThanOrEqual("count", 5), 1),
		"lessThanColumn":               NewLessThanColumn("a", "b"),
		"lessThanColumnOrEqual":        WithMinDiff(NewLessThanColumnOrEqual("a", "b"), 0.5),
		"topN":                         NewTopN("count", 10, true),
		"bottomN":                      NewTopN("count", 3, false),
		"empty and":                    NewAnd(),
		"empty or":                     NewOr(),
		"not of and":                   NewNot(NewAnd(NewIsNA("a"), NewLessThan("b", 1))),
		"not of isNotNA":               NewNot(NewIsNotNA("a")),
		"not of not":                   NewNot(NewNot(NewTopN("a", 1, true))),
		"nested": NewOr(
			NewAnd(NewGreaterThanOrEqual("count", 1), NewLessThanOrEqual("count", 10)),
			NewNot(NewPatternContainSubsequence("cdr3", "W")),
			NewAnd(NewTopN("count", 5, true), NewNot(NewIsNA("vGene"))),
		),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, u := range constructed() {
		t.Run(name, func(t *testing.T) {
			compiled := Compile(u)
			require.NotNil(t, compiled)

			parsed, err := Parse(compiled)
			require.NoError(t, err)
			assert.Equal(t, u, parsed)
		})
	}
}

func TestCompileDeterminism(t *testing.T) {
	for name, u := range constructed() {
		t.Run(name, func(t *testing.T) {
			first, err := filter.Marshal(Compile(u))
			require.NoError(t, err)

			for range 5 {
				again, err := filter.Marshal(Compile(u))
				require.NoError(t, err)
				assert.Equal(t, first, again)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		ui   Filter
		want string
	}{
		{
			name: "lessThan",
			ui:   WithMinDiff(NewLessThan("x", 10), 1),
			want: `{"type":"numericalComparison","lhs":"x","rhs":10,"minDiff":1}`,
		},
		{
			name: "greaterThanOrEqual",
			ui:   NewGreaterThanOrEqual("x", 5),
			want: `{"type":"numericalComparison","lhs":5,"rhs":"x","allowEqual":true}`,
		},
		{
			name: "topN",
			ui:   NewTopN("x", 10, true),
			want: `{"type":"numericalComparison","lhs":{"transformer":"rank","column":"x","descending":true},"rhs":10,"allowEqual":true}`,
		},
		{
			name: "isNotNA",
			ui:   NewIsNotNA("x"),
			want: `{"type":"not","filter":{"type":"isNA","column":"x"}}`,
		},
		{
			name: "patternNotContainSubsequence",
			ui:   NewPatternNotContainSubsequence("x", "AA"),
			want: `{"type":"not","filter":{"type":"pattern","column":"x","predicate":{"type":"containSubsequence","value":"AA"}}}`,
		},
		{
			name: "lessThanColumnOrEqual",
			ui:   NewLessThanColumnOrEqual("x", "y"),
			want: `{"type":"numericalComparison","lhs":"x","rhs":"y","allowEqual":true}`,
		},
		{
			name: "empty and",
			ui:   NewAnd(),
			want: `{"type":"and","filters":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filter.Marshal(Compile(tt.ui))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCompileNil(t *testing.T) {
	assert.Nil(t, Compile(nil))
}

func TestCompileCopiesMinDiff(t *testing.T) {
	u := WithMinDiff(NewLessThan("x", 1), 2)

	compiled, ok := Compile(u).(*filter.NumericalComparison)
	require.True(t, ok)

	*compiled.MinDiff = 7
	assert.InDelta(t, 2.0, *u.(*LessThan).MinDiff, 0)
}
