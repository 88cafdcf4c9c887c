package admin

import "errors"

var (
	ErrValidation = errors.New("invalid admin request")
	ErrNotFound   = errors.New("policy not found")
)
