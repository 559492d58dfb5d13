package seqlock

import "errors"

var (
	// ErrNotTrivial is returned for types holding pointers or other references.
	ErrNotTrivial = errors.New("seqlock: type is not safely byte-copyable")

	// ErrFieldRange is returned when a field accessor points outside the value.
	ErrFieldRange = errors.New("seqlock: field selector outside of value")

	// ErrCounterWidth is returned for a counter width other than 8, 16, 32 or 64.
	ErrCounterWidth = errors.New("seqlock: unsupported counter width")
)
