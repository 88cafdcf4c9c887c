package booking

import (
	"context"
	"time"

	"musicstudio/internal/domain"
	"musicstudio/internal/modules/availability"
	"musicstudio/internal/modules/policy"
)

// BookingRepository defines the storage operations this module writes through.
type BookingRepository interface {
	CreateChecked(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string, refund float64) error
	Reschedule(ctx context.Context, old *domain.Booking, repl *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// RoomRepository resolves service types to rooms and rates.
type RoomRepository interface {
	GetByServiceType(ctx context.Context, t domain.ServiceType) (*domain.Room, error)
}

// InstructorRepository validates instructor assignments.
type InstructorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
}

// ConflictChecker is the availability module's slot check.
type ConflictChecker interface {
	CheckSlot(ctx context.Context, roomID int64, date time.Time, startMinutes, endMinutes int, instructorID *int64, excludeID int64) availability.Outcome
}

// PolicyEvaluator computes refund/fee terms for cancel and reschedule.
type PolicyEvaluator interface {
	Evaluate(ctx context.Context, kind domain.PolicyType, totalAmount float64, scheduledStart, now time.Time) (*policy.Evaluation, error)
}

// NotificationSender pushes best-effort booking lifecycle notifications.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking)
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, refund float64)
	NotifyBookingRescheduled(ctx context.Context, old, repl *domain.Booking, fee float64)
}
