package admin

// ListBookingsQuery binds the admin listing filters from the query string.
type ListBookingsQuery struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Status   string `form:"status"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

type RevenueQuery struct {
	DateFrom string `form:"date_from" binding:"required"`
	DateTo   string `form:"date_to" binding:"required"`
}

type CreatePolicyRequest struct {
	PolicyType         string  `json:"policy_type" binding:"required"`
	HoursBeforeBooking float64 `json:"hours_before_booking"`
	Percentage         float64 `json:"percentage"`
	Description        string  `json:"description"`
	IsActive           *bool   `json:"is_active"`
}

type UpdatePolicyRequest struct {
	HoursBeforeBooking float64 `json:"hours_before_booking"`
	Percentage         float64 `json:"percentage"`
	Description        string  `json:"description"`
	IsActive           *bool   `json:"is_active"`
}
