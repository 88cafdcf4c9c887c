package checkin

import "errors"

var (
	ErrNotFound     = errors.New("booking not found")
	ErrNotCheckable = errors.New("booking is not ready for check-in")
	ErrInvalidCode  = errors.New("invalid check-in code")
	ErrCodeUsed     = errors.New("check-in code already used")
)
