package domain

import "time"

// Room is the physical space a service type runs in. Each service type maps to
// exactly one room, which is the scope overlap is checked within.
type Room struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	ServiceType ServiceType `json:"service_type"`
	HourlyRate  float64     `json:"hourly_rate"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
