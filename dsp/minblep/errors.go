package minblep

import "errors"

// Errors returned by table construction and decoding.
var (
	// ErrInvalidRate indicates a non-positive naive or output sample rate.
	ErrInvalidRate = errors.New("minblep: invalid sample rate")

	// ErrScaleMismatch indicates a requested scale that differs from the
	// gcd-derived ideal scale. Any other scale breaks the one-second
	// periodicity the index maps rely on.
	ErrScaleMismatch = errors.New("minblep: scale mismatch")

	// ErrInvalidCutoff indicates a cutoff outside (0, 0.5].
	ErrInvalidCutoff = errors.New("minblep: cutoff must be in (0, 0.5]")

	// ErrInvalidTransition indicates a transition outside (0, 1).
	ErrInvalidTransition = errors.New("minblep: transition must be in (0, 1)")

	// ErrInvalidSnapshot indicates a malformed or inconsistent table snapshot.
	ErrInvalidSnapshot = errors.New("minblep: invalid table snapshot")
)
