package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentExpired PaymentStatus = "expired"
	PaymentFailed  PaymentStatus = "failed"
)

type ServiceType string

const (
	ServiceMusicLesson ServiceType = "music_lesson"
	ServiceRecording   ServiceType = "recording"
	ServiceRehearsal   ServiceType = "rehearsal"
	ServiceDance       ServiceType = "dance"
	ServiceArrangement ServiceType = "arrangement"
	ServiceVoiceover   ServiceType = "voiceover"
)

// ServiceTypes lists every bookable service.
var ServiceTypes = []ServiceType{
	ServiceMusicLesson,
	ServiceRecording,
	ServiceRehearsal,
	ServiceDance,
	ServiceArrangement,
	ServiceVoiceover,
}

func (s ServiceType) Valid() bool {
	for _, t := range ServiceTypes {
		if s == t {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              int64       `json:"id"`
	Reference       string      `json:"reference" gorm:"uniqueIndex"`
	RoomID          int64       `json:"room_id" validate:"required"`
	ServiceType     ServiceType `json:"service_type" validate:"required"`
	UserID          int64       `json:"user_id" validate:"required"`
	InstructorID    *int64      `json:"instructor_id,omitempty"`
	BookingDate     time.Time   `json:"booking_date" validate:"required"`
	StartMinutes    int         `json:"start_minutes"`
	EndMinutes      int         `json:"end_minutes"`
	DurationMinutes int         `json:"duration_minutes"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	TotalAmount     float64  `json:"total_amount"`
	RefundAmount    *float64 `json:"refund_amount,omitempty"`
	ReschedulingFee *float64 `json:"rescheduling_fee,omitempty"`

	// RescheduledFrom links to the booking this one supersedes. The chain is
	// one-directional: the old row is cancelled, the new row points back at it.
	RescheduledFrom *int64 `json:"rescheduled_from,omitempty"`

	Notes              string `json:"notes,omitempty" gorm:"type:text"`
	CancellationReason string `json:"cancellation_reason,omitempty" gorm:"type:text"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// ScheduledStart combines the booking date and start time-of-day into one instant.
func (b *Booking) ScheduledStart() time.Time {
	d := b.BookingDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(b.StartMinutes) * time.Minute)
}

// IsActive reports whether the booking still occupies its interval.
func (b *Booking) IsActive() bool {
	return b.Status != BookingCancelled
}

// CanBeCancelled reports whether a cancellation is a legal transition.
// Cancelled is terminal; completed bookings are history.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// CanBeRescheduled mirrors CanBeCancelled: only live bookings move.
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// ClockRange renders the occupied interval as "HH:MM-HH:MM" for logs.
func (b *Booking) ClockRange() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		b.StartMinutes/60, b.StartMinutes%60, b.EndMinutes/60, b.EndMinutes%60)
}
