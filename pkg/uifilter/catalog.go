package uifilter

import (
	"slices"

	"github.com/clonobrowser/annotator/pkg/column"
)

// Operator describes one UI filter variant for editors building a picker
type Operator struct {
	Type    Type               `json:"type"`
	Label   string             `json:"label"`
	Columns int                `json:"columns"`
	Accepts []column.ValueType `json:"accepts"`
}

// SupportedFor reports whether the operator can be applied to a column of type vt
func (o Operator) SupportedFor(vt column.ValueType) bool {
	return slices.Contains(o.Accepts, vt)
}

//nolint:gochecknoglobals // value type groups
var (
	anyValueType = []column.ValueType{
		column.ValueTypeInt, column.ValueTypeLong, column.ValueTypeFloat, column.ValueTypeDouble, column.ValueTypeString,
	}
	numericValueTypes = []column.ValueType{
		column.ValueTypeInt, column.ValueTypeLong, column.ValueTypeFloat, column.ValueTypeDouble,
	}
	stringValueTypes = []column.ValueType{column.ValueTypeString}
)

// Catalog lists every UI filter variant in picker order. Combinators apply to
// no column and accept no value type.
func Catalog() []Operator {
	return []Operator{
		{Type: TypeIsNA, Label: "Is NA", Columns: 1, Accepts: anyValueType},
		{Type: TypeIsNotNA, Label: "Is Not NA", Columns: 1, Accepts: anyValueType},
		{Type: TypePatternEquals, Label: "Pattern Equals", Columns: 1, Accepts: stringValueTypes},
		{Type: TypePatternNotEquals, Label: "Pattern Not Equals", Columns: 1, Accepts: stringValueTypes},
		{Type: TypePatternContainSubsequence, Label: "Pattern Contains Subsequence", Columns: 1, Accepts: stringValueTypes},
		{Type: TypePatternNotContainSubsequence, Label: "Pattern Does Not Contain Subsequence", Columns: 1, Accepts: stringValueTypes},
		{Type: TypeLessThan, Label: "Less Than Number", Columns: 1, Accepts: numericValueTypes},
		{Type: TypeLessThanOrEqual, Label: "Less Than or Equal to Number", Columns: 1, Accepts: numericValueTypes},
		{Type: TypeGreaterThan, Label: "Greater Than Number", Columns: 1, Accepts: numericValueTypes},
		{Type: TypeGreaterThanOrEqual, Label: "Greater Than or Equal to Number", Columns: 1, Accepts: numericValueTypes},
		{Type: TypeLessThanColumn, Label: "Less Than Column", Columns: 2, Accepts: numericValueTypes},
		{Type: TypeLessThanColumnOrEqual, Label: "Less Than or Equal to Column", Columns: 2, Accepts: numericValueTypes},
		{Type: TypeTopN, Label: "Top N", Columns: 1, Accepts: numericValueTypes},
		{Type: TypeAnd, Label: "And", Accepts: []column.ValueType{}},
		{Type: TypeOr, Label: "Or", Accepts: []column.ValueType{}},
		{Type: TypeNot, Label: "Not", Accepts: []column.ValueType{}},
	}
}

// OptionsFor returns the operators applicable to a column of type vt
func OptionsFor(vt column.ValueType) []Operator {
	var out []Operator

	for _, op := range Catalog() {
		if op.SupportedFor(vt) {
			out = append(out, op)
		}
	}

	return out
}

// Lookup returns the catalog entry for t
func Lookup(t Type) (Operator, bool) {
	for _, op := range Catalog() {
		if op.Type == t {
			return op, true
		}
	}

	return Operator{}, false
}
