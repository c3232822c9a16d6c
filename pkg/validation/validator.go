// Package validation checks that an annotation script can discriminate the
// records its mode annotates.
package validation

import (
	"context"
	"fmt"

	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/observability"
	"github.com/sirupsen/logrus"
)

// Validator validates annotation scripts
type Validator interface {
	// Validate checks script and reports which steps reference two-axis columns
	Validate(ctx context.Context, script filter.Script) Result
}

// Result contains the result of script validation
type Result struct {
	Valid        bool    // Whether the script can be used as-is
	Reason       string  // Short explanation of the outcome
	TwoAxisSteps []int   // Indexes of steps referencing at least one two-axis column
	Errors       []error // Validation errors, empty when Valid
}

// Outcome reasons
const (
	ReasonModeWithoutAxisRequirement = "mode does not require two-axis columns"
	ReasonNoSteps                    = "script has no steps"
	ReasonEditing                    = "first step has no conditions yet"
	ReasonTwoAxisColumnFound         = "script references a two-axis column"
	ReasonNoTwoAxisColumn            = "no step references a two-axis column"
)

// IsValid reports whether script is usable in its mode.
//
// Only bySampleAndClonotype scripts are checked: they must reference at least
// one column keyed by two axes, otherwise every sample of a clonotype would get
// the same label. Scripts without steps, or whose first step has an empty
// And/Or, are still being edited and count as valid.
func IsValid(script filter.Script) bool {
	return Evaluate(script).Valid
}

// Evaluate runs the validity check and reports the details
func Evaluate(script filter.Script) Result {
	if script.Mode != filter.ModeBySampleAndClonotype {
		return Result{Valid: true, Reason: ReasonModeWithoutAxisRequirement}
	}

	if len(script.Steps) == 0 {
		return Result{Valid: true, Reason: ReasonNoSteps}
	}

	if isEmptyCombinator(script.Steps[0].Filter) {
		return Result{Valid: true, Reason: ReasonEditing}
	}

	result := Result{}

	for i, step := range script.Steps {
		if step.Filter == nil {
			continue
		}

		value, err := filter.ToValue(step.Filter)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%w: steps[%d]: %w", ErrUnencodableStep, i, err))
			continue
		}

		if containsTwoAxis(value) {
			result.TwoAxisSteps = append(result.TwoAxisSteps, i)
		}
	}

	if len(result.TwoAxisSteps) > 0 {
		return Result{Valid: true, Reason: ReasonTwoAxisColumnFound, TwoAxisSteps: result.TwoAxisSteps}
	}

	result.Reason = ReasonNoTwoAxisColumn
	result.Errors = append(result.Errors, ErrNoTwoAxisColumn)

	return result
}

func isEmptyCombinator(f filter.Filter) bool {
	switch v := f.(type) {
	case *filter.And:
		return len(v.Filters) == 0
	case *filter.Or:
		return len(v.Filters) == 0
	}

	return false
}

// scriptValidator implements the Validator interface
type scriptValidator struct {
	log logrus.FieldLogger
}

// NewValidator creates a new script validator
func NewValidator(log logrus.FieldLogger) Validator {
	return &scriptValidator{
		log: log.WithField("service", "validator"),
	}
}

// Validate implements Validator
func (v *scriptValidator) Validate(_ context.Context, script filter.Script) Result {
	result := Evaluate(script)

	outcome := "valid"
	if !result.Valid {
		outcome = "invalid"
	}

	observability.RecordValidation(string(script.Mode), outcome)

	log := v.log.WithFields(logrus.Fields{
		"title":  script.Title,
		"mode":   script.Mode,
		"steps":  len(script.Steps),
		"result": outcome,
	})

	if result.Valid {
		log.WithField("reason", result.Reason).Debug("Script validated")
	} else {
		log.WithField("reason", result.Reason).Warn("Script cannot discriminate samples")
	}

	return result
}
