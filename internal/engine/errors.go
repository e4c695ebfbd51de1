package engine

import "errors"

// Contract violations by pattern authors or callers. They are surfaced
// immediately rather than degraded around, since continuing with an
// inconsistent lighting state defeats the installation's purpose.
var (
	// ErrInvalidIndex means a part index outside the configured range.
	ErrInvalidIndex = errors.New("invalid part index")
	// ErrInvalidDuration means a degenerate duration on a host-facing
	// path (zero durations on StartAnimation itself are valid and
	// complete instantly).
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrConstraintViolation means an animation start would light parts
	// from two mutually exclusive groups at once.
	ErrConstraintViolation = errors.New("exclusivity constraint violation")
)
