package repository

import "errors"

var (
	// ErrOverlapping is returned when an insert would collide with an existing
	// non-cancelled booking in the same room on the same date.
	ErrOverlapping = errors.New("overlapping booking")

	// ErrDuplicateEvent is returned when a provider event id was already recorded.
	ErrDuplicateEvent = errors.New("duplicate payment event")
)
