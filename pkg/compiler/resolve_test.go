package compiler

import (
	"testing"

	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	script := filter.Script{
		Mode: filter.ModeByClonotype,
		Steps: []filter.Step{
			{Label: "expanded", Filter: &filter.IsNA{Column: "a"}},
			{Label: "expanded", Filter: &filter.IsNA{Column: "b"}},
			{Label: "motif", Filter: &filter.IsNA{Column: "c"}},
		},
	}

	tests := []struct {
		name    string
		matched []int
		want    Resolution
		wantErr error
	}{
		{name: "none", matched: nil, want: Resolution{}},
		{name: "single", matched: []int{1}, want: Resolution{Label: "expanded", Matched: true}},
		{name: "last step wins", matched: []int{0, 2}, want: Resolution{Label: "motif", Matched: true}},
		{name: "duplicates", matched: []int{0, 0}, want: Resolution{Label: "expanded", Matched: true}},
		{name: "negative index", matched: []int{-1}, wantErr: ErrStepOutOfRange},
		{name: "past the end", matched: []int{3}, wantErr: ErrStepOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(script, tt.matched)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}
