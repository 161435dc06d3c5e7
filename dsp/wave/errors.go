package wave

import "errors"

// Errors returned by pair construction and transform primitives.
var (
	// ErrConfig reports malformed constructor or transform arguments:
	// mismatched trace lengths, even-length traces, non-positive sampling
	// intervals, odd lag counts, unknown geometry tags. Wrapped with
	// detail by the failing call.
	ErrConfig = errors.New("wave: invalid configuration")

	// ErrWindowOutOfRange reports a window whose start or end sample
	// falls outside the available trace.
	ErrWindowOutOfRange = errors.New("wave: window out of range")
)
