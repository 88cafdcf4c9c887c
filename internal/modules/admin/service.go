package admin

import (
	"context"
	"time"

	"musicstudio/internal/domain"
	"musicstudio/internal/repository"
)

const maxPageSize = 200

type Service struct {
	bookings BookingRepository
	policies PolicyRepository
}

func NewService(bookings BookingRepository, policies PolicyRepository) *Service {
	return &Service{bookings: bookings, policies: policies}
}

func (s *Service) ListBookings(ctx context.Context, q ListBookingsQuery) ([]domain.Booking, error) {
	f := repository.BookingFilter{
		Offset: q.Offset,
		Limit:  q.Limit,
	}
	if f.Limit <= 0 || f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if q.DateFrom != "" {
		from, err := parseDate(q.DateFrom)
		if err != nil {
			return nil, ErrValidation
		}
		f.DateFrom = from
	}
	if q.DateTo != "" {
		to, err := parseDate(q.DateTo)
		if err != nil {
			return nil, ErrValidation
		}
		f.DateTo = to
	}
	if q.Status != "" {
		st := domain.BookingStatus(q.Status)
		switch st {
		case domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled:
			f.Status = st
		default:
			return nil, ErrValidation
		}
	}
	return s.bookings.List(ctx, f)
}

func (s *Service) Revenue(ctx context.Context, q RevenueQuery) (*repository.RevenueTotals, error) {
	from, err := parseDate(q.DateFrom)
	if err != nil {
		return nil, ErrValidation
	}
	to, err := parseDate(q.DateTo)
	if err != nil {
		return nil, ErrValidation
	}
	if to.Before(from) {
		return nil, ErrValidation
	}
	return s.bookings.Revenue(ctx, from, to)
}

func (s *Service) ListPolicies(ctx context.Context) ([]domain.CancellationPolicy, error) {
	return s.policies.List(ctx)
}

func (s *Service) CreatePolicy(ctx context.Context, req CreatePolicyRequest) (*domain.CancellationPolicy, error) {
	t := domain.PolicyType(req.PolicyType)
	if t != domain.PolicyCancellation && t != domain.PolicyRescheduling {
		return nil, ErrValidation
	}
	if req.HoursBeforeBooking < 0 || req.Percentage < 0 || req.Percentage > 100 {
		return nil, ErrValidation
	}

	p := &domain.CancellationPolicy{
		PolicyType:         t,
		HoursBeforeBooking: req.HoursBeforeBooking,
		Percentage:         req.Percentage,
		Description:        req.Description,
		IsActive:           true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.policies.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePolicy(ctx context.Context, id int64, req UpdatePolicyRequest) (*domain.CancellationPolicy, error) {
	if req.HoursBeforeBooking < 0 || req.Percentage < 0 || req.Percentage > 100 {
		return nil, ErrValidation
	}

	existing, err := s.findPolicy(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.HoursBeforeBooking = req.HoursBeforeBooking
	existing.Percentage = req.Percentage
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.policies.Update(ctx, existing); err != nil {
		return nil, err
	}
	existing.UpdatedAt = time.Now().UTC()
	return existing, nil
}

func (s *Service) findPolicy(ctx context.Context, id int64) (*domain.CancellationPolicy, error) {
	all, err := s.policies.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
