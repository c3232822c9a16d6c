package column

// IsTwoAxisValue applies the two-axis test to an untyped decoded JSON value.
// It is total: anything that is not an object yields false.
func IsTwoAxisValue(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}

	if axes, ok := obj["axes"].([]any); ok && len(axes) == 2 {
		return true
	}

	if source, ok := obj["source"]; ok {
		return IsTwoAxisValue(source)
	}

	return false
}

// ValueType is the physical value type of a column
type ValueType string

// Column value types
const (
	ValueTypeInt    ValueType = "Int"
	ValueTypeLong   ValueType = "Long"
	ValueTypeFloat  ValueType = "Float"
	ValueTypeDouble ValueType = "Double"
	ValueTypeString ValueType = "String"
)

// IsNumeric reports whether values of this type can be compared numerically
func (t ValueType) IsNumeric() bool {
	switch t {
	case ValueTypeInt, ValueTypeLong, ValueTypeFloat, ValueTypeDouble:
		return true
	case ValueTypeString:
		return false
	}

	return false
}

// IsString reports whether values of this type can be pattern matched
func (t ValueType) IsString() bool {
	return t == ValueTypeString
}
