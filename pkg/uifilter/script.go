package uifilter

import (
	"encoding/json"
	"fmt"

	"github.com/clonobrowser/annotator/pkg/filter"
)

// Step is one editable annotation rule. Its filter is normally an And or an Or
// holding the conditions the editor shows as a list.
type Step struct {
	Label  string `json:"label"`
	Filter Filter `json:"filter"`
}

// Script is the editor's view of an annotation script
type Script struct {
	Title string      `json:"title"`
	Mode  filter.Mode `json:"mode"`
	Steps []Step      `json:"steps"`
}

// CompileScript compiles every step of s. Steps without a filter, and steps whose
// And/Or has no children yet, constrain nothing and are dropped.
func CompileScript(s Script) filter.Script {
	out := filter.Script{
		Title: s.Title,
		Mode:  s.Mode,
		Steps: make([]filter.Step, 0, len(s.Steps)),
	}

	for _, step := range s.Steps {
		if isEmptyStep(step) {
			continue
		}

		out.Steps = append(out.Steps, filter.Step{
			Filter: Compile(step.Filter),
			Label:  step.Label,
		})
	}

	return out
}

// ParseScript converts a canonical script into its editor form. Step filters
// that are not an And or an Or are wrapped in a single-child And so the editor
// can list them.
func ParseScript(s filter.Script) (Script, error) {
	out := Script{
		Title: s.Title,
		Mode:  s.Mode,
		Steps: make([]Step, 0, len(s.Steps)),
	}

	for i, step := range s.Steps {
		parsed, err := Parse(step.Filter)
		if err != nil {
			return Script{}, fmt.Errorf("steps[%d] %q: %w", i, step.Label, err)
		}

		if !IsCombinator(parsed) {
			parsed = NewAnd(parsed)
		}

		out.Steps = append(out.Steps, Step{Label: step.Label, Filter: parsed})
	}

	return out, nil
}

func isEmptyStep(step Step) bool {
	switch v := step.Filter.(type) {
	case nil:
		return true
	case *And:
		return len(v.Filters) == 0
	case *Or:
		return len(v.Filters) == 0
	}

	return false
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label  string          `json:"label"`
		Filter json.RawMessage `json:"filter"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Label = raw.Label
	s.Filter = nil

	if len(raw.Filter) == 0 || string(raw.Filter) == "null" {
		return nil
	}

	f, err := Unmarshal(raw.Filter)
	if err != nil {
		return fmt.Errorf("step %q: %w", raw.Label, err)
	}

	s.Filter = f

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

// UnmarshalScript decodes an editor script
func UnmarshalScript(data []byte) (Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}, err
	}

	if !s.Mode.Valid() {
		return Script{}, fmt.Errorf("%w: %q", filter.ErrInvalidMode, s.Mode)
	}

	return s, nil
}
