package uifilter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal encodes a UI filter as {"type": ..., <fields>}, the form editors persist
func Marshal(f Filter) ([]byte, error) {
	if f == nil {
		return nil, ErrMissingFilter
	}

	return json.Marshal(f)
}

// Unmarshal decodes a UI filter written by Marshal
func Unmarshal(data []byte) (Filter, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidFilterObject
	}

	var head struct {
		Type Type `json:"type"`
	}

	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilterObject, err)
	}

	var target Filter

	switch head.Type {
	case TypeIsNA:
		target = &IsNA{}
	case TypeIsNotNA:
		target = &IsNotNA{}
	case TypePatternEquals:
		target = &PatternEquals{}
	case TypePatternNotEquals:
		target = &PatternNotEquals{}
	case TypePatternContainSubsequence:
		target = &PatternContainSubsequence{}
	case TypePatternNotContainSubsequence:
		target = &PatternNotContainSubsequence{}
	case TypeLessThan:
		target = &LessThan{}
	case TypeLessThanOrEqual:
		target = &LessThanOrEqual{}
	case TypeGreaterThan:
		target = &GreaterThan{}
	case TypeGreaterThanOrEqual:
		target = &GreaterThanOrEqual{}
	case TypeLessThanColumn:
		target = &LessThanColumn{}
	case TypeLessThanColumnOrEqual:
		target = &LessThanColumnOrEqual{}
	case TypeTopN:
		target = &TopN{}
	case TypeAnd:
		children, err := unmarshalChildren(trimmed)
		if err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}

		return &And{Filters: children}, nil
	case TypeOr:
		children, err := unmarshalChildren(trimmed)
		if err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}

		return &Or{Filters: children}, nil
	case TypeNot:
		var raw struct {
			Filter json.RawMessage `json:"filter"`
		}

		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}

		if len(raw.Filter) == 0 {
			return nil, fmt.Errorf("not: %w", ErrMissingFilter)
		}

		inner, err := Unmarshal(raw.Filter)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}

		return NewNot(inner), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedFilterTag, head.Type)
	}

	if err := json.Unmarshal(trimmed, target); err != nil {
		return nil, fmt.Errorf("%s: %w", head.Type, err)
	}

	return target, nil
}

func unmarshalChildren(data []byte) ([]Filter, error) {
	var raw struct {
		Filters []json.RawMessage `json:"filters"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	children := make([]Filter, 0, len(raw.Filters))

	for i, childRaw := range raw.Filters {
		child, err := Unmarshal(childRaw)
		if err != nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, err)
		}

		children = append(children, child)
	}

	return children, nil
}

// marshalTagged encodes payload as a JSON object with the type field first
func marshalTagged(t Type, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	tag, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteString(`{"type":`)
	buf.Write(tag)

	if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler
func (f *IsNA) MarshalJSON() ([]byte, error) {
	type plain IsNA
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *IsNotNA) MarshalJSON() ([]byte, error) {
	type plain IsNotNA
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *PatternEquals) MarshalJSON() ([]byte, error) {
	type plain PatternEquals
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *PatternNotEquals) MarshalJSON() ([]byte, error) {
	type plain PatternNotEquals
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *PatternContainSubsequence) MarshalJSON() ([]byte, error) {
	type plain PatternContainSubsequence
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *PatternNotContainSubsequence) MarshalJSON() ([]byte, error) {
	type plain PatternNotContainSubsequence
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *LessThan) MarshalJSON() ([]byte, error) {
	type plain LessThan
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *LessThanOrEqual) MarshalJSON() ([]byte, error) {
	type plain LessThanOrEqual
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *GreaterThan) MarshalJSON() ([]byte, error) {
	type plain GreaterThan
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *GreaterThanOrEqual) MarshalJSON() ([]byte, error) {
	type plain GreaterThanOrEqual
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *LessThanColumn) MarshalJSON() ([]byte, error) {
	type plain LessThanColumn
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *LessThanColumnOrEqual) MarshalJSON() ([]byte, error) {
	type plain LessThanColumnOrEqual
	return marshalTagged(f.Type(), (*plain)(f))
}

// MarshalJSON implements json.Marshaler
func (f *TopN) MarshalJSON() ([]byte, error) {
	type plain TopN
	return marshalTagged(f.Type(), (*plain)(f))
}

// UnmarshalJSON implements json.Unmarshaler. A missing descending field
// means the highest ranked records, the only direction older editors wrote.
func (f *TopN) UnmarshalJSON(data []byte) error {
	type plain TopN

	raw := struct {
		*plain
		Descending *bool `json:"descending"`
	}{plain: (*plain)(f)}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Descending = raw.Descending == nil || *raw.Descending

	return nil
}

// MarshalJSON implements json.Marshaler
func (f *And) MarshalJSON() ([]byte, error) {
	return marshalCollection(f.Type(), f.Filters)
}

// MarshalJSON implements json.Marshaler
func (f *Or) MarshalJSON() ([]byte, error) {
	return marshalCollection(f.Type(), f.Filters)
}

// MarshalJSON implements json.Marshaler
func (f *Not) MarshalJSON() ([]byte, error) {
	if f.Filter == nil {
		return nil, ErrMissingFilter
	}

	return marshalTagged(f.Type(), struct {
		Filter Filter `json:"filter"`
	}{Filter: f.Filter})
}

func marshalCollection(t Type, filters []Filter) ([]byte, error) {
	for i, child := range filters {
		if child == nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, ErrMissingFilter)
		}
	}

	if filters == nil {
		filters = []Filter{}
	}

	return marshalTagged(t, struct {
		Filters []Filter `json:"filters"`
	}{Filters: filters})
}
