// Package guards decides which UI-level variant a canonical filter value
// structurally matches.
//
// The canonical numericalComparison tag is shared by many UI variants that
// differ only in operand shapes and the presence of allowEqual, so every
// guard inspects the exact field signature. Guards accept a typed
// filter.Filter, a decoded JSON value (map[string]any) or raw JSON bytes.
// They never panic and report a mismatch as false.
package guards

import (
	"encoding/json"

	"github.com/clonobrowser/annotator/pkg/filter"
)

// IsNA matches {type: isNA, column}
func IsNA(v any) bool {
	m, ok := object(v)
	if !ok || m["type"] != string(filter.TagIsNA) {
		return false
	}

	_, ok = stringField(m, "column")

	return ok
}

// IsNotNA matches {type: not, filter: isNA}
func IsNotNA(v any) bool {
	m, ok := object(v)
	if !ok || m["type"] != string(filter.TagNot) {
		return false
	}

	return IsNA(m["filter"])
}

// IsPattern matches a pattern filter using the given predicate type
func IsPattern(v any, predicate filter.PredicateType) bool {
	m, ok := object(v)
	if !ok || m["type"] != string(filter.TagPattern) {
		return false
	}

	if _, ok := stringField(m, "column"); !ok {
		return false
	}

	pred, ok := m["predicate"].(map[string]any)
	if !ok || pred["type"] != string(predicate) {
		return false
	}

	_, ok = stringField(pred, "value")

	return ok
}

// IsNotPattern matches {type: not, filter: pattern} with the given predicate type
func IsNotPattern(v any, predicate filter.PredicateType) bool {
	m, ok := object(v)
	if !ok || m["type"] != string(filter.TagNot) {
		return false
	}

	return IsPattern(m["filter"], predicate)
}

// IsLessThan matches column < constant
func IsLessThan(v any) bool {
	m, ok := comparison(v)
	return ok && isColumn(m["lhs"]) && isNumber(m["rhs"]) && strict(m)
}

// IsLessThanOrEqual matches column <= constant
func IsLessThanOrEqual(v any) bool {
	m, ok := comparison(v)
	return ok && isColumn(m["lhs"]) && isNumber(m["rhs"]) && orEqual(m)
}

// IsGreaterThan matches constant < column
func IsGreaterThan(v any) bool {
	m, ok := comparison(v)
	return ok && isNumber(m["lhs"]) && isColumn(m["rhs"]) && strict(m)
}

// IsGreaterThanOrEqual matches constant <= column
func IsGreaterThanOrEqual(v any) bool {
	m, ok := comparison(v)
	return ok && isNumber(m["lhs"]) && isColumn(m["rhs"]) && orEqual(m)
}

// IsLessThanColumn matches column < column
func IsLessThanColumn(v any) bool {
	m, ok := comparison(v)
	return ok && isColumn(m["lhs"]) && isColumn(m["rhs"]) && strict(m)
}

// IsLessThanColumnOrEqual matches column <= column
func IsLessThanColumnOrEqual(v any) bool {
	m, ok := comparison(v)
	return ok && isColumn(m["lhs"]) && isColumn(m["rhs"]) && orEqual(m)
}

// IsTopN matches rank(column) <= n
func IsTopN(v any) bool {
	return isTransformed(v, filter.TransformerRank)
}

// IsTopCumulativeShare matches sortedCumulativeSum(column) <= share
func IsTopCumulativeShare(v any) bool {
	return isTransformed(v, filter.TransformerSortedCumulativeSum)
}

func isTransformed(v any, transformer filter.Transformer) bool {
	m, ok := comparison(v)
	if !ok || !isNumber(m["rhs"]) || !allowEqual(m) || !zeroMinDiff(m) {
		return false
	}

	lhs, ok := m["lhs"].(map[string]any)
	if !ok || lhs["transformer"] != string(transformer) {
		return false
	}

	if _, ok := stringField(lhs, "column"); !ok {
		return false
	}

	_, ok = lhs["descending"].(bool)

	return ok
}

// object normalizes v into a decoded JSON object
func object(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case filter.Filter:
		decoded, err := filter.ToValue(t)
		if err != nil {
			return nil, false
		}

		m, ok := decoded.(map[string]any)

		return m, ok
	case json.RawMessage:
		return decodeObject(t)
	case []byte:
		return decodeObject(t)
	}

	return nil, false
}

func decodeObject(raw []byte) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil, false
	}

	return m, true
}

func comparison(v any) (map[string]any, bool) {
	m, ok := object(v)
	if !ok || m["type"] != string(filter.TagNumericalComparison) {
		return nil, false
	}

	return m, true
}

// strict holds when allowEqual is absent or false and minDiff is well formed
func strict(m map[string]any) bool {
	if raw, present := m["allowEqual"]; present {
		b, ok := raw.(bool)
		if !ok || b {
			return false
		}
	}

	return validMinDiff(m)
}

func orEqual(m map[string]any) bool {
	return allowEqual(m) && validMinDiff(m)
}

func allowEqual(m map[string]any) bool {
	b, ok := m["allowEqual"].(bool)
	return ok && b
}

func validMinDiff(m map[string]any) bool {
	raw, present := m["minDiff"]
	return !present || isNumber(raw)
}

func zeroMinDiff(m map[string]any) bool {
	raw, present := m["minDiff"]
	if !present {
		return true
	}

	n, ok := number(raw)

	return ok && n == 0
}

func isColumn(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNumber(v any) bool {
	_, ok := number(v)
	return ok
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}

	return 0, false
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}
