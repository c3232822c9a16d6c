package validation

import (
	"encoding/json"
	"strings"

	"github.com/clonobrowser/annotator/pkg/column"
)

// containsTwoAxis reports whether v, a decoded JSON value, holds a two-axis
// column descriptor anywhere inside it. String values that hold embedded JSON
// are decoded and scanned as well, since column IDs are serialized descriptors.
func containsTwoAxis(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		if column.IsTwoAxisValue(t) {
			return true
		}

		for _, child := range t {
			if containsTwoAxis(child) {
				return true
			}
		}
	case []any:
		for _, child := range t {
			if containsTwoAxis(child) {
				return true
			}
		}
	case string:
		if embedded, ok := decodeEmbedded(t); ok {
			return containsTwoAxis(embedded)
		}
	}

	return false
}

// decodeEmbedded decodes s when it holds a JSON object or array. Anything else,
// including malformed JSON, is treated as a plain string.
func decodeEmbedded(s string) (any, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, false
	}

	return v, true
}
