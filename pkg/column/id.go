// Package column defines the identifiers annotation filters use to reference columns.
//
// A column ID is an opaque string for everything except the script validator: it is
// the canonical JSON serialization of a structural descriptor (name, domain, axes).
package column

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ID identifies a column. Filters treat it as an opaque string.
type ID string

// String returns the raw identifier
func (id ID) String() string {
	return string(id)
}

// Descriptor is the structural form serialized inside an ID.
// Axes entries are kept raw: they may be axis specs, anchor refs like ["main",1]
// or {"anchor":"main","idx":1} objects.
type Descriptor struct {
	Name   string                     `json:"name"`
	Domain map[string]json.RawMessage `json:"domain,omitempty"`
	Axes   []json.RawMessage          `json:"axes,omitempty"`
	Source *Descriptor                `json:"source,omitempty"`
}

// IsTwoAxis reports whether the descriptor is anchored on exactly two axes,
// directly or through its source descriptor.
func (d *Descriptor) IsTwoAxis() bool {
	if d == nil {
		return false
	}

	if len(d.Axes) == 2 {
		return true
	}

	return d.Source.IsTwoAxis()
}

// Parse decodes the descriptor serialized in id
func Parse(id ID) (Descriptor, error) {
	var d Descriptor

	if err := json.Unmarshal([]byte(id), &d); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotDescriptor, string(id))
	}

	if d.Name == "" && d.Source == nil {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrEmptyColumnName, string(id))
	}

	return d, nil
}

// NewID serializes d as a canonical JSON column identifier
func NewID(d Descriptor) (ID, error) {
	if d.Name == "" && d.Source == nil {
		return "", ErrEmptyColumnName
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}

	canonical, err := Canonicalize(raw)
	if err != nil {
		return "", err
	}

	return ID(canonical), nil
}

// Canonical returns the canonical form of id when it holds a descriptor, and id
// unchanged otherwise.
func Canonical(id ID) ID {
	canonical, err := Canonicalize([]byte(id))
	if err != nil {
		return id
	}

	return ID(canonical)
}

// Canonicalize re-encodes a JSON document with sorted object keys and no
// insignificant whitespace. Number literals are preserved as written.
func Canonicalize(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Digest derives a stable 64-bit key from the canonical form of raw.
// Inputs that are not JSON are hashed as-is.
func Digest(raw []byte) uint64 {
	canonical, err := Canonicalize(raw)
	if err != nil {
		return xxhash.Sum64(raw)
	}

	return xxhash.Sum64(canonical)
}
