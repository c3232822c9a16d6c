package filter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/clonobrowser/annotator/pkg/column"
)

// Marshal encodes f in its canonical JSON form. Field order is fixed, so equal
// trees always encode to identical bytes.
func Marshal(f Filter) ([]byte, error) {
	if f == nil {
		return nil, ErrMissingFilter
	}

	return json.Marshal(f)
}

// Unmarshal decodes a canonical JSON filter. The tag is read first, then the
// payload is decoded into the matching variant.
func Unmarshal(data []byte) (Filter, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidFilterObject
	}

	var head rawHead
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilterObject, err)
	}

	switch head.Type {
	case TagPattern:
		return unmarshalPattern(trimmed)
	case TagIsNA:
		return unmarshalIsNA(trimmed)
	case TagNumericalComparison:
		return unmarshalComparison(trimmed)
	case TagOr:
		children, err := unmarshalChildren(trimmed)
		if err != nil {
			return nil, err
		}

		return &Or{Filters: children}, nil
	case TagAnd:
		children, err := unmarshalChildren(trimmed)
		if err != nil {
			return nil, err
		}

		return &And{Filters: children}, nil
	case TagNot:
		return unmarshalNot(trimmed)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedTag, head.Type)
	}
}

// rawHead is used for two-phase decoding to read the tag
type rawHead struct {
	Type Tag `json:"type"`
}

type patternJSON struct {
	Type      Tag        `json:"type"`
	Column    *column.ID `json:"column"`
	Predicate *Predicate `json:"predicate"`
}

type isNAJSON struct {
	Type   Tag        `json:"type"`
	Column *column.ID `json:"column"`
}

type comparisonJSON struct {
	Type       Tag             `json:"type"`
	LHS        json.RawMessage `json:"lhs"`
	RHS        json.RawMessage `json:"rhs"`
	MinDiff    *float64        `json:"minDiff,omitempty"`
	AllowEqual bool            `json:"allowEqual,omitempty"`
}

type collectionJSON struct {
	Type    Tag               `json:"type"`
	Filters []json.RawMessage `json:"filters"`
}

type notJSON struct {
	Type   Tag             `json:"type"`
	Filter json.RawMessage `json:"filter"`
}

// MarshalJSON implements json.Marshaler
func (p *Pattern) MarshalJSON() ([]byte, error) {
	if !p.Predicate.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, p.Predicate.Type)
	}

	col := p.Column
	pred := p.Predicate

	return json.Marshal(patternJSON{Type: TagPattern, Column: &col, Predicate: &pred})
}

// MarshalJSON implements json.Marshaler
func (f *IsNA) MarshalJSON() ([]byte, error) {
	col := f.Column

	return json.Marshal(isNAJSON{Type: TagIsNA, Column: &col})
}

// MarshalJSON implements json.Marshaler
func (c *NumericalComparison) MarshalJSON() ([]byte, error) {
	if IsConstant(c.LHS) && IsConstant(c.RHS) {
		return nil, ErrConstantComparison
	}

	lhs, err := marshalOperand(c.LHS)
	if err != nil {
		return nil, fmt.Errorf("lhs: %w", err)
	}

	rhs, err := marshalOperand(c.RHS)
	if err != nil {
		return nil, fmt.Errorf("rhs: %w", err)
	}

	return json.Marshal(comparisonJSON{
		Type:       TagNumericalComparison,
		LHS:        lhs,
		RHS:        rhs,
		MinDiff:    c.MinDiff,
		AllowEqual: c.AllowEqual,
	})
}

// MarshalJSON implements json.Marshaler
func (o *Or) MarshalJSON() ([]byte, error) {
	return marshalCollection(TagOr, o.Filters)
}

// MarshalJSON implements json.Marshaler
func (a *And) MarshalJSON() ([]byte, error) {
	return marshalCollection(TagAnd, a.Filters)
}

// MarshalJSON implements json.Marshaler
func (n *Not) MarshalJSON() ([]byte, error) {
	if n.Filter == nil {
		return nil, ErrMissingFilter
	}

	child, err := json.Marshal(n.Filter)
	if err != nil {
		return nil, err
	}

	return json.Marshal(notJSON{Type: TagNot, Filter: child})
}

func marshalCollection(tag Tag, filters []Filter) ([]byte, error) {
	children := make([]json.RawMessage, 0, len(filters))

	for i, child := range filters {
		if child == nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, ErrMissingFilter)
		}

		raw, err := json.Marshal(child)
		if err != nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, err)
		}

		children = append(children, raw)
	}

	return json.Marshal(collectionJSON{Type: tag, Filters: children})
}

func marshalOperand(op Operand) (json.RawMessage, error) {
	switch v := op.(type) {
	case Constant:
		return json.Marshal(float64(v))
	case ColumnRef:
		return json.Marshal(string(v))
	case *Transform:
		if v == nil {
			return nil, ErrInvalidOperand
		}

		if !v.Transformer.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransformer, v.Transformer)
		}

		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidOperand, op)
	}
}

func unmarshalPattern(data []byte) (*Pattern, error) {
	var raw patternJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}

	if raw.Column == nil {
		return nil, fmt.Errorf("pattern: %w", ErrMissingColumn)
	}

	if raw.Predicate == nil || !raw.Predicate.Type.Valid() {
		return nil, fmt.Errorf("pattern: %w", ErrUnknownPredicate)
	}

	return &Pattern{Column: *raw.Column, Predicate: *raw.Predicate}, nil
}

func unmarshalIsNA(data []byte) (*IsNA, error) {
	var raw isNAJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("isNA: %w", err)
	}

	if raw.Column == nil {
		return nil, fmt.Errorf("isNA: %w", ErrMissingColumn)
	}

	return &IsNA{Column: *raw.Column}, nil
}

func unmarshalComparison(data []byte) (*NumericalComparison, error) {
	var raw comparisonJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("numericalComparison: %w", err)
	}

	lhs, err := unmarshalOperand(raw.LHS)
	if err != nil {
		return nil, fmt.Errorf("numericalComparison lhs: %w", err)
	}

	rhs, err := unmarshalOperand(raw.RHS)
	if err != nil {
		return nil, fmt.Errorf("numericalComparison rhs: %w", err)
	}

	if IsConstant(lhs) && IsConstant(rhs) {
		return nil, ErrConstantComparison
	}

	return &NumericalComparison{
		LHS:        lhs,
		RHS:        rhs,
		MinDiff:    raw.MinDiff,
		AllowEqual: raw.AllowEqual,
	}, nil
}

func unmarshalOperand(raw json.RawMessage) (Operand, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrInvalidOperand
	}

	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOperand, err)
		}

		return ColumnRef(id), nil
	case '{':
		var t Transform
		if err := json.Unmarshal(trimmed, &t); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOperand, err)
		}

		if !t.Transformer.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransformer, t.Transformer)
		}

		return &t, nil
	default:
		var v float64
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOperand, err)
		}

		return Constant(v), nil
	}
}

func unmarshalChildren(data []byte) ([]Filter, error) {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", raw.Type, err)
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

func unmarshalNot(data []byte) (*Not, error) {
	var raw notJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not: %w", err)
	}

	if len(bytes.TrimSpace(raw.Filter)) == 0 {
		return nil, fmt.Errorf("not: %w", ErrMissingFilter)
	}

	child, err := Unmarshal(raw.Filter)
	if err != nil {
		return nil, fmt.Errorf("not: %w", err)
	}

	return &Not{Filter: child}, nil
}

// ToValue returns the generic decoded JSON form of f (maps, slices, float64,
// strings and bools), as consumed by structural guards and scanners.
func ToValue(f Filter) (any, error) {
	raw, err := Marshal(f)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	return v, nil
}
