package availability

// SlotsResponse is the storefront availability listing.
type SlotsResponse struct {
	Service  string `json:"service"`
	Date     string `json:"date"`
	Duration int    `json:"duration_minutes"`
	Slots    []Slot `json:"slots"`
}

// GridTick is one cell of the legacy half-hour grid. Occupied means starting
// the requested duration at this tick would touch an existing booking.
type GridTick struct {
	Time     string `json:"time"`
	Minutes  int    `json:"minutes"`
	Occupied bool   `json:"occupied"`
}

type GridResponse struct {
	Service  string     `json:"service"`
	Date     string     `json:"date"`
	Duration int        `json:"duration_minutes"`
	Ticks    []GridTick `json:"ticks"`
}

type InstructorAvailabilityResponse struct {
	InstructorID int64  `json:"instructor_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	Duration     int    `json:"duration_minutes"`
	Available    bool   `json:"available"`
}
