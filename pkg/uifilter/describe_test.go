package uifilter

import (
	"testing"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	labels := map[column.ID]string{"count": "Read Count", "cdr3": "CDR3"}
	label := func(id column.ID) string {
		if l, ok := labels[id]; ok {
			return l
		}

		return id.String()
	}

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "top n", filter: NewTopN("count", 10, true), want: "Top 10 by Read Count"},
		{name: "bottom n", filter: NewTopN("count", 3, false), want: "Bottom 3 by Read Count"},
		{name: "greater than or equal", filter: NewGreaterThanOrEqual("count", 5), want: "5 <= Read Count"},
		{name: "less than with min diff", filter: WithMinDiff(NewLessThan("count", 0.5), 2), want: "Read Count + 2 < 0.5"},
		{name: "is NA", filter: NewIsNA("count"), want: "Read Count is NA"},
		{name: "is not NA", filter: NewIsNotNA("count"), want: "Read Count is not NA"},
		{name: "pattern", filter: NewPatternContainSubsequence("cdr3", "GG"), want: `CDR3 contains "GG"`},
		{name: "column comparison", filter: NewLessThanColumnOrEqual("a", "b"), want: "a <= b"},
		{
			name:   "between",
			filter: NewAnd(NewGreaterThanOrEqual("count", 1), NewLessThan("count", 10)),
			want:   "1 <= Read Count < 10",
		},
		{
			name:   "mixed columns are not a range",
			filter: NewAnd(NewGreaterThanOrEqual("count", 1), NewLessThan("a", 10)),
			want:   "1 <= Read Count and a < 10",
		},
		{
			name:   "nested",
			filter: NewOr(NewIsNA("a"), NewAnd(NewIsNA("b"), NewIsNA("c"))),
			want:   "a is NA or (b is NA and c is NA)",
		},
		{name: "not", filter: NewNot(NewOr(NewIsNA("a"))), want: "not (a is NA)"},
		{name: "empty and", filter: NewAnd(), want: "all records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.filter, label))
		})
	}
}

func TestColumnLabel(t *testing.T) {
	assert.Equal(t, "pl7.app/vdj/readCount", ColumnLabel(`{"name":"pl7.app/vdj/readCount","axes":[]}`))
	assert.Equal(t, "plain", ColumnLabel("plain"))
}
