package availability

import "fmt"

// Slot is one candidate bookable interval. Times are both machine-readable
// (minutes since midnight, 24-hour clock strings) and display-ready (12-hour).
type Slot struct {
	Display      string `json:"display"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
}

// GenerateSlots enumerates candidate start times at stepMinutes granularity
// inside the [openMinutes, closeMinutes) operating window, independent of any
// existing bookings. A candidate is emitted only while start+duration stays
// strictly before close, so the final slot never runs right up to closing.
// A duration that does not fit the window yields an empty, non-nil slice.
func GenerateSlots(openMinutes, closeMinutes, durationMinutes, stepMinutes int) []Slot {
	slots := make([]Slot, 0)
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return slots
	}

	for start := openMinutes; start+durationMinutes < closeMinutes; start += stepMinutes {
		end := start + durationMinutes
		slots = append(slots, Slot{
			Display:      fmt.Sprintf("%s - %s", clock12(start), clock12(end)),
			StartTime:    clock24(start),
			EndTime:      clock24(end),
			StartMinutes: start,
			EndMinutes:   end,
		})
	}
	return slots
}

func clock24(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func clock12(m int) string {
	h, min := m/60, m%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, min, suffix)
}
