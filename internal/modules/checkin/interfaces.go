package checkin

import (
	"context"

	"musicstudio/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type CheckInRepository interface {
	Create(ctx context.Context, ci *domain.CheckIn) error
	GetByCode(ctx context.Context, code string) (*domain.CheckIn, error)
	MarkUsed(ctx context.Context, id int64) (bool, error)
}
