package filter

import "github.com/clonobrowser/annotator/pkg/column"

// Operand is one side of a numerical comparison: a Constant, a ColumnRef or a
// *Transform of a column.
type Operand interface {
	operandMarker()
}

// Constant is a literal number
type Constant float64

// ColumnRef is the value of a column
type ColumnRef column.ID

// Transformer names a derivation applied to a column's values
type Transformer string

// Column transformers
const (
	TransformerRank                Transformer = "rank"
	TransformerSortedCumulativeSum Transformer = "sortedCumulativeSum"
	TransformerLog10               Transformer = "log10"
)

// Valid reports whether t is a known transformer
func (t Transformer) Valid() bool {
	switch t {
	case TransformerRank, TransformerSortedCumulativeSum, TransformerLog10:
		return true
	}

	return false
}

// Transform is a derived column, e.g. the descending rank of a column's values
type Transform struct {
	Transformer Transformer `json:"transformer"`
	Column      column.ID   `json:"column"`
	Descending  bool        `json:"descending"`
}

func (Constant) operandMarker()   {}
func (ColumnRef) operandMarker()  {}
func (*Transform) operandMarker() {}

// IsConstant reports whether op is a literal number
func IsConstant(op Operand) bool {
	_, ok := op.(Constant)
	return ok
}
