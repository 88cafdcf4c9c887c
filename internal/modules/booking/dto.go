package booking

import "musicstudio/internal/modules/policy"

type CreateBookingRequest struct {
	Service         string `json:"service" binding:"required"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	StartMinutes    int    `json:"start_minutes" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	UserID          int64  `json:"user_id" binding:"required"`
	InstructorID    *int64 `json:"instructor_id"`
	Notes           string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RescheduleBookingRequest struct {
	Date         string `json:"date" binding:"required"`
	StartMinutes int    `json:"start_minutes" binding:"required"`
}

// CancelBookingResponse pairs the cancelled booking with the policy terms
// that produced the refund.
type CancelBookingResponse struct {
	BookingID    int64              `json:"booking_id"`
	Status       string             `json:"status"`
	RefundAmount float64            `json:"refund_amount"`
	Policy       *policy.Evaluation `json:"policy"`
}

type RescheduleBookingResponse struct {
	BookingID       int64              `json:"booking_id"`
	Reference       string             `json:"reference"`
	RescheduledFrom int64              `json:"rescheduled_from"`
	ReschedulingFee float64            `json:"rescheduling_fee"`
	Policy          *policy.Evaluation `json:"policy"`
}
