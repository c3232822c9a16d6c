package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/uifilter"
)

// Axis IDs used by the fixtures
var (
	SampleAxis    = json.RawMessage(`{"name":"pl7.app/sampleId","type":"String"}`)
	ClonotypeAxis = json.RawMessage(`{"name":"pl7.app/vdj/clonotypeKey","type":"String"}`)
)

// ClonotypeColumn returns the ID of a column keyed by clonotype only
func ClonotypeColumn(name string) column.ID {
	return mustID(column.Descriptor{
		Name: name,
		Axes: []json.RawMessage{ClonotypeAxis},
	})
}

// SampleClonotypeColumn returns the ID of a column keyed by sample and clonotype
func SampleClonotypeColumn(name string) column.ID {
	return mustID(column.Descriptor{
		Name: name,
		Axes: []json.RawMessage{SampleAxis, ClonotypeAxis},
	})
}

func mustID(d column.Descriptor) column.ID {
	id, err := column.NewID(d)
	if err != nil {
		panic(fmt.Sprintf("fixture column %q: %v", d.Name, err))
	}

	return id
}

// TestScriptConfig holds configuration for creating test scripts.
type TestScriptConfig struct {
	Title string
	Mode  filter.Mode
	Steps []uifilter.Step
}

// TestScriptOption is a functional option for customizing test scripts.
type TestScriptOption func(*TestScriptConfig)

// WithTitle sets the script title.
func WithTitle(title string) TestScriptOption {
	return func(cfg *TestScriptConfig) {
		cfg.Title = title
	}
}

// WithMode sets the annotation mode.
func WithMode(mode filter.Mode) TestScriptOption {
	return func(cfg *TestScriptConfig) {
		cfg.Mode = mode
	}
}

// WithStep appends a step.
func WithStep(label string, f uifilter.Filter) TestScriptOption {
	return func(cfg *TestScriptConfig) {
		cfg.Steps = append(cfg.Steps, uifilter.Step{Label: label, Filter: f})
	}
}

// NewTestScript builds an editor script. Without options it is the
// DefaultTestScript.
func NewTestScript(opts ...TestScriptOption) uifilter.Script {
	if len(opts) == 0 {
		return DefaultTestScript()
	}

	cfg := &TestScriptConfig{
		Title: "test script",
		Mode:  filter.ModeByClonotype,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return uifilter.Script{
		Title: cfg.Title,
		Mode:  cfg.Mode,
		Steps: cfg.Steps,
	}
}

// DefaultTestScript returns a byClonotype script with two steps: a top-N
// rule and a sequence rule that overrides it.
func DefaultTestScript() uifilter.Script {
	abundance := ClonotypeColumn("pl7.app/vdj/readCount")
	cdr3 := ClonotypeColumn("pl7.app/vdj/sequence")

	return NewTestScript(
		WithTitle("expanded clones"),
		WithStep("Top", uifilter.NewAnd(uifilter.NewTopN(abundance, 10, true))),
		WithStep("Motif", uifilter.NewAnd(
			uifilter.NewPatternContainSubsequence(cdr3, "GGY"),
			uifilter.NewGreaterThanOrEqual(abundance, 5),
		)),
	)
}

// SampleScript returns a bySampleAndClonotype script. When twoAxis is true
// its first step references a column keyed by sample and clonotype.
func SampleScript(twoAxis bool) uifilter.Script {
	col := ClonotypeColumn("pl7.app/vdj/readCount")
	if twoAxis {
		col = SampleClonotypeColumn("pl7.app/vdj/readFraction")
	}

	return NewTestScript(
		WithTitle("per sample"),
		WithMode(filter.ModeBySampleAndClonotype),
		WithStep("Dominant", uifilter.NewAnd(uifilter.NewGreaterThan(col, 0.05))),
	)
}

// CanonicalScript compiles script and encodes the result
func CanonicalScript(script uifilter.Script) []byte {
	data, err := filter.MarshalScript(uifilter.CompileScript(script))
	if err != nil {
		panic(fmt.Sprintf("fixture script %q: %v", script.Title, err))
	}

	return data
}
