package compiler

import "errors"

// Define static errors
var (
	ErrInvalidCacheTTL = errors.New("cache TTL must be positive")
	ErrEncodeScript    = errors.New("failed to encode compiled script")
	ErrDigestScript    = errors.New("failed to digest script")
	ErrStepOutOfRange  = errors.New("step index out of range")
)
