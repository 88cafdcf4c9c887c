package domain

import "time"

type PolicyType string

const (
	PolicyCancellation PolicyType = "cancellation"
	PolicyRescheduling PolicyType = "rescheduling"
)

// CancellationPolicy is one tier of the refund/fee table. The tier that applies
// to a booking is the one with the largest HoursBeforeBooking not exceeding the
// remaining lead time.
type CancellationPolicy struct {
	ID                 int64      `json:"id"`
	PolicyType         PolicyType `json:"policy_type"`
	HoursBeforeBooking float64    `json:"hours_before_booking"`
	Percentage         float64    `json:"percentage"` // 0..100, refund for cancellation, fee for rescheduling
	Description        string     `json:"description"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
