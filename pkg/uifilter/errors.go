package uifilter

import "errors"

// UI filter errors
var (
	// ErrUnrecognizedFilterTag means the input is not one of the known filter tags
	ErrUnrecognizedFilterTag = errors.New("unrecognized filter tag")
	// ErrUnsupportedFilterShape means a valid canonical filter has no UI representation.
	// Editors should show such filters read-only.
	ErrUnsupportedFilterShape = errors.New("filter shape is not representable in the editor")
	ErrMissingFilter          = errors.New("filter is required")
	ErrInvalidFilterObject    = errors.New("filter must be a JSON object")
	// ErrNonFiniteNumber means a threshold, rank or minimum difference is NaN or infinite
	ErrNonFiniteNumber = errors.New("number must be finite")
)
