package admin

import (
	"context"
	"time"

	"musicstudio/internal/domain"
	"musicstudio/internal/repository"
)

type BookingRepository interface {
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	Revenue(ctx context.Context, from, to time.Time) (*repository.RevenueTotals, error)
}

type PolicyRepository interface {
	List(ctx context.Context) ([]domain.CancellationPolicy, error)
	Create(ctx context.Context, p *domain.CancellationPolicy) error
	Update(ctx context.Context, p *domain.CancellationPolicy) error
}
