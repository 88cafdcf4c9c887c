package availability

import "musicstudio/internal/domain"

// Status tags the outcome of a conflict check. Unknown is deliberate: when the
// bookings lookup fails the caller must decide, instead of the check quietly
// reporting a free slot during an outage.
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusConflict
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a conflict check.
type Outcome struct {
	Status Status
	// With holds the bookings that collide when Status is StatusConflict.
	With []domain.Booking
	Err  error
}

func available() Outcome { return Outcome{Status: StatusAvailable} }

func conflict(b []domain.Booking) Outcome {
	return Outcome{Status: StatusConflict, With: b}
}

func unknown(err error) Outcome { return Outcome{Status: StatusUnknown, Err: err} }

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Intervals that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// CheckAgainst tests a candidate interval against already-fetched bookings.
// Cancelled rows and the excluded id (a booking being rescheduled against
// itself) never conflict.
func CheckAgainst(bookings []domain.Booking, startMinutes, endMinutes int, excludeID int64) Outcome {
	var hits []domain.Booking
	for _, b := range bookings {
		if !b.IsActive() || b.ID == excludeID {
			continue
		}
		if Overlaps(startMinutes, endMinutes, b.StartMinutes, b.EndMinutes) {
			hits = append(hits, b)
		}
	}
	if len(hits) > 0 {
		return conflict(hits)
	}
	return available()
}
