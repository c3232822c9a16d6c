package filter

import "github.com/clonobrowser/annotator/pkg/column"

// Walk visits f and its descendants depth-first, parents before children.
// Returning false from fn skips the children of the visited node.
func Walk(f Filter, fn func(Filter) bool) {
	if f == nil || !fn(f) {
		return
	}

	switch v := f.(type) {
	case *Or:
		for _, child := range v.Filters {
			Walk(child, fn)
		}
	case *And:
		for _, child := range v.Filters {
			Walk(child, fn)
		}
	case *Not:
		Walk(v.Filter, fn)
	}
}

// Columns returns every column referenced by f, in order of first appearance
func Columns(f Filter) []column.ID {
	seen := make(map[column.ID]struct{})
	out := make([]column.ID, 0)

	add := func(id column.ID) {
		if _, ok := seen[id]; ok {
			return
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	Walk(f, func(node Filter) bool {
		switch v := node.(type) {
		case *Pattern:
			add(v.Column)
		case *IsNA:
			add(v.Column)
		case *NumericalComparison:
			for _, op := range []Operand{v.LHS, v.RHS} {
				if id, ok := OperandColumn(op); ok {
					add(id)
				}
			}
		}

		return true
	})

	return out
}

// OperandColumn returns the column an operand reads, directly or through a transform
func OperandColumn(op Operand) (column.ID, bool) {
	switch v := op.(type) {
	case ColumnRef:
		return column.ID(v), true
	case *Transform:
		if v == nil {
			return "", false
		}

		return v.Column, true
	}

	return "", false
}
