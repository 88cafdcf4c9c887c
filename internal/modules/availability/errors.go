package availability

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrUnknownService = errors.New("unknown service type")
)
