package filter

import (
	"encoding/json"
	"fmt"
)

// Mode selects the record granularity a script annotates
type Mode string

// Annotation modes
const (
	ModeByClonotype          Mode = "byClonotype"
	ModeBySampleAndClonotype Mode = "bySampleAndClonotype"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeByClonotype || m == ModeBySampleAndClonotype
}

// Step assigns Label to every record matching Filter
type Step struct {
	Filter Filter `json:"filter"`
	Label  string `json:"label"`
}

// Script is an ordered list of annotation steps.
//
// When several steps match the same record the later step wins: steps are
// applied from the bottom of the list to the top, so the first step has the
// lowest precedence.
type Script struct {
	Title string `json:"title"`
	Mode  Mode   `json:"mode"`
	Steps []Step `json:"steps"`
}

type stepJSON struct {
	Filter json.RawMessage `json:"filter"`
	Label  string          `json:"label"`
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw stepJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f, err := Unmarshal(raw.Filter)
	if err != nil {
		return fmt.Errorf("step %q: %w", raw.Label, err)
	}

	s.Filter = f
	s.Label = raw.Label

	return nil
}

// MarshalJSON implements json.Marshaler
func (s Script) MarshalJSON() ([]byte, error) {
	type plain Script

	out := plain(s)
	if out.Steps == nil {
		out.Steps = []Step{}
	}

	return json.Marshal(out)
}

// Validate checks the mode and that every step carries a filter
func (s *Script) Validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, s.Mode)
	}

	for i, step := range s.Steps {
		if step.Filter == nil {
			return fmt.Errorf("steps[%d]: %w", i, ErrMissingFilter)
		}
	}

	return nil
}

// UnmarshalScript decodes and validates a canonical script
func UnmarshalScript(data []byte) (Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}, err
	}

	if err := s.Validate(); err != nil {
		return Script{}, err
	}

	return s, nil
}

// MarshalScript encodes s in canonical form
func MarshalScript(s Script) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return json.Marshal(s)
}

// Precedence returns step indexes in the order an engine must try them:
// the last step first.
func (s *Script) Precedence() []int {
	order := make([]int, len(s.Steps))
	for i := range s.Steps {
		order[i] = len(s.Steps) - 1 - i
	}

	return order
}

// Resolve returns the label of the highest-precedence step that matches a
// record, as decided by the matches oracle, which receives each step with its
// index. ok is false when no step matches.
func (s *Script) Resolve(matches func(int, Step) bool) (label string, ok bool) {
	for _, i := range s.Precedence() {
		if matches(i, s.Steps[i]) {
			return s.Steps[i].Label, true
		}
	}

	return "", false
}
