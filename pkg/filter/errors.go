package filter

import "errors"

// Filter codec errors
var (
	ErrUnrecognizedTag     = errors.New("unrecognized filter tag")
	ErrConstantComparison  = errors.New("numerical comparison cannot compare two constants")
	ErrInvalidOperand      = errors.New("invalid comparison operand")
	ErrUnknownTransformer  = errors.New("unknown column transformer")
	ErrUnknownPredicate    = errors.New("unknown pattern predicate")
	ErrMissingFilter       = errors.New("filter is required")
	ErrMissingColumn       = errors.New("column is required")
	ErrInvalidMode         = errors.New("invalid annotation mode")
	ErrInvalidFilterObject = errors.New("filter must be a JSON object")
)
