package validation

import "errors"

// Validation-specific errors
var (
	ErrNoTwoAxisColumn = errors.New("no step references a column keyed by both sample and clonotype")
	ErrUnencodableStep = errors.New("step filter cannot be encoded")
)
