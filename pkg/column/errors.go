package column

import "errors"

// Column identifier errors
var (
	ErrInvalidJSON     = errors.New("invalid JSON")
	ErrNotDescriptor   = errors.New("column id is not a structural descriptor")
	ErrEmptyColumnName = errors.New("column descriptor name is required")
)
