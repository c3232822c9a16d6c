package uifilter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/guards"
)

// LabelFunc returns the display label of a column
type LabelFunc func(column.ID) string

// ColumnLabel is the default LabelFunc: the descriptor name for structured IDs,
// the raw ID otherwise
func ColumnLabel(id column.ID) string {
	d, err := column.Parse(id)
	if err != nil || d.Name == "" {
		return id.String()
	}

	return d.Name
}

// Describe renders f as a short human-readable condition, e.g. "Top 10 by count"
func Describe(f Filter, label LabelFunc) string {
	if label == nil {
		label = ColumnLabel
	}

	return describe(f, label, false)
}

func describe(f Filter, label LabelFunc, nested bool) string {
	switch v := f.(type) {
	case *IsNA:
		return label(v.Column) + " is NA"
	case *IsNotNA:
		return label(v.Column) + " is not NA"
	case *PatternEquals:
		return fmt.Sprintf("%s equals %q", label(v.Column), v.Value)
	case *PatternNotEquals:
		return fmt.Sprintf("%s does not equal %q", label(v.Column), v.Value)
	case *PatternContainSubsequence:
		return fmt.Sprintf("%s contains %q", label(v.Column), v.Value)
	case *PatternNotContainSubsequence:
		return fmt.Sprintf("%s does not contain %q", label(v.Column), v.Value)
	case *LessThan:
		return withDiff(label(v.Column), v.MinDiff) + " < " + formatNumber(v.RHS)
	case *LessThanOrEqual:
		return withDiff(label(v.Column), v.MinDiff) + " <= " + formatNumber(v.RHS)
	case *GreaterThan:
		return withDiff(formatNumber(v.LHS), v.MinDiff) + " < " + label(v.Column)
	case *GreaterThanOrEqual:
		return withDiff(formatNumber(v.LHS), v.MinDiff) + " <= " + label(v.Column)
	case *LessThanColumn:
		return withDiff(label(v.LHS), v.MinDiff) + " < " + label(v.RHS)
	case *LessThanColumnOrEqual:
		return withDiff(label(v.LHS), v.MinDiff) + " <= " + label(v.RHS)
	case *TopN:
		if v.Descending {
			return fmt.Sprintf("Top %s by %s", formatNumber(v.N), label(v.Column))
		}

		return fmt.Sprintf("Bottom %s by %s", formatNumber(v.N), label(v.Column))
	case *And:
		if b, ok := guards.BetweenBounds(Compile(v)); ok {
			return describeBetween(b, label)
		}

		return join(v.Filters, " and ", "all records", label, nested)
	case *Or:
		return join(v.Filters, " or ", "no records", label, nested)
	case *Not:
		return "not (" + describe(v.Filter, label, false) + ")"
	}

	return ""
}

func describeBetween(b guards.Between, label LabelFunc) string {
	minOp, maxOp := "<", "<"
	if b.MinInclusive {
		minOp = "<="
	}

	if b.MaxInclusive {
		maxOp = "<="
	}

	return fmt.Sprintf("%s %s %s %s %s", formatNumber(b.Min), minOp, label(b.Column), maxOp, formatNumber(b.Max))
}

func join(filters []Filter, sep, empty string, label LabelFunc, nested bool) string {
	if len(filters) == 0 {
		return empty
	}

	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, describe(f, label, true))
	}

	out := strings.Join(parts, sep)
	if nested && len(filters) > 1 {
		return "(" + out + ")"
	}

	return out
}

func withDiff(operand string, minDiff *float64) string {
	if minDiff == nil || *minDiff == 0 {
		return operand
	}

	return operand + " + " + formatNumber(*minDiff)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
