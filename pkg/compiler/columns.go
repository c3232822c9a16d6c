package compiler

import (
	"fmt"

	"github.com/clonobrowser/annotator/pkg/column"
)

// ColumnRequest asks for the anchored ID of Column relative to Anchors
type ColumnRequest struct {
	Anchors map[string]column.Spec `json:"anchors"`
	Column  column.Spec            `json:"column"`
}

// DerivedColumn is an anchored column ID ready to be referenced by filters.
// TwoAxis columns can discriminate records in the sample-level mode.
type DerivedColumn struct {
	ID      column.ID `json:"id"`
	TwoAxis bool      `json:"twoAxis"`
}

// DeriveColumn rewrites req.Column relative to its anchors and serializes the result
func DeriveColumn(req ColumnRequest) (*DerivedColumn, error) {
	id, err := column.NewAnchorContext(req.Anchors).DeriveID(req.Column)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", req.Column.Name, err)
	}

	d, err := column.Parse(id)
	if err != nil {
		return nil, err
	}

	return &DerivedColumn{
		ID:      id,
		TwoAxis: d.IsTwoAxis(),
	}, nil
}

// canonicalColumns dedupes ids by their canonical form, keeping first occurrences
func canonicalColumns(ids []column.ID) []column.ID {
	seen := make(map[column.ID]struct{}, len(ids))
	out := make([]column.ID, 0, len(ids))

	for _, id := range ids {
		c := column.Canonical(id)
		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}
		out = append(out, c)
	}

	return out
}
