package payment

import "errors"

var (
	ErrNotConfigured    = errors.New("payment webhook secret is not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrUnknownBooking   = errors.New("webhook references an unknown booking")
)
