package compiler

import (
	"fmt"

	"github.com/clonobrowser/annotator/pkg/filter"
)

// Resolution is the label a record receives given the steps it matched
type Resolution struct {
	Label   string `json:"label"`
	Matched bool   `json:"matched"`
}

// Resolve applies step precedence to the indexes of the steps a record matched,
// as reported by an evaluation engine. Later steps override earlier ones.
func Resolve(script filter.Script, matched []int) (*Resolution, error) {
	hits := make(map[int]struct{}, len(matched))

	for _, i := range matched {
		if i < 0 || i >= len(script.Steps) {
			return nil, fmt.Errorf("%w: %d (script has %d steps)", ErrStepOutOfRange, i, len(script.Steps))
		}

		hits[i] = struct{}{}
	}

	label, ok := script.Resolve(func(i int, _ filter.Step) bool {
		_, hit := hits[i]
		return hit
	})

	return &Resolution{Label: label, Matched: ok}, nil
}
