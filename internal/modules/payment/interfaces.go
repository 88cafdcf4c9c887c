package payment

import (
	"context"

	"musicstudio/internal/domain"
)

type bookingStore interface {
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type eventStore interface {
	Insert(ctx context.Context, e *domain.PaymentEvent) error
}

type notifier interface {
	NotifyPaymentReceived(ctx context.Context, b *domain.Booking)
}
