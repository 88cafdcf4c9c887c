package availability

import (
	"context"
	"time"

	"musicstudio/internal/domain"
)

// Config carries the operating window and duration bounds the availability
// paths work within.
type Config struct {
	OpenMinutes     int
	CloseMinutes    int
	SlotStepMinutes int

	GridOpenMinutes  int
	GridCloseMinutes int
	GridStepMinutes  int

	MinDurationMinutes int
	MaxDurationMinutes int
}

type Service struct {
	bookings    BookingRepository
	rooms       RoomRepository
	instructors InstructorRepository
	cfg         Config
}

func NewService(bookings BookingRepository, rooms RoomRepository, instructors InstructorRepository, cfg Config) *Service {
	return &Service{
		bookings:    bookings,
		rooms:       rooms,
		instructors: instructors,
		cfg:         cfg,
	}
}

func parseDate(dateStr string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (s *Service) validDuration(d int) bool {
	return d >= s.cfg.MinDurationMinutes && d <= s.cfg.MaxDurationMinutes
}

// GetAvailableSlots enumerates candidates for the service's room and filters
// out those that overlap a non-cancelled booking. A storage failure propagates;
// it is never reported as an open calendar.
func (s *Service) GetAvailableSlots(ctx context.Context, service domain.ServiceType, dateStr string, durationMinutes int) (*SlotsResponse, error) {
	if !service.Valid() {
		return nil, ErrUnknownService
	}
	if !s.validDuration(durationMinutes) {
		return nil, ErrValidation
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByServiceType(ctx, service)
	if err != nil {
		return nil, err
	}

	candidates := GenerateSlots(s.cfg.OpenMinutes, s.cfg.CloseMinutes, durationMinutes, s.cfg.SlotStepMinutes)

	// One read for the whole day; each candidate is filtered in memory.
	existing, err := s.bookings.FindActiveForRoom(ctx, date, room.ID, 0)
	if err != nil {
		return nil, err
	}

	free := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		if out := CheckAgainst(existing, c.StartMinutes, c.EndMinutes, 0); out.Status == StatusAvailable {
			free = append(free, c)
		}
	}

	return &SlotsResponse{
		Service:  string(service),
		Date:     dateStr,
		Duration: durationMinutes,
		Slots:    free,
	}, nil
}

// GetAvailabilityGrid serves the storefront's legacy half-hour grid: the same
// generator and overlap rule, but every tick is reported with an occupancy
// flag instead of being filtered out.
func (s *Service) GetAvailabilityGrid(ctx context.Context, service domain.ServiceType, dateStr string, durationMinutes int) (*GridResponse, error) {
	if !service.Valid() {
		return nil, ErrUnknownService
	}
	if !s.validDuration(durationMinutes) {
		return nil, ErrValidation
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByServiceType(ctx, service)
	if err != nil {
		return nil, err
	}
	existing, err := s.bookings.FindActiveForRoom(ctx, date, room.ID, 0)
	if err != nil {
		return nil, err
	}

	ticks := make([]GridTick, 0)
	for t := s.cfg.GridOpenMinutes; t < s.cfg.GridCloseMinutes; t += s.cfg.GridStepMinutes {
		out := CheckAgainst(existing, t, t+durationMinutes, 0)
		ticks = append(ticks, GridTick{
			Time:     clock24(t),
			Minutes:  t,
			Occupied: out.Status == StatusConflict,
		})
	}

	return &GridResponse{
		Service:  string(service),
		Date:     dateStr,
		Duration: durationMinutes,
		Ticks:    ticks,
	}, nil
}

// CheckSlot validates one proposed interval against the room scope and, when
// an instructor is attached, the instructor scope as well. The tagged outcome
// forces callers to treat lookup failures explicitly.
func (s *Service) CheckSlot(ctx context.Context, roomID int64, date time.Time, startMinutes, endMinutes int, instructorID *int64, excludeID int64) Outcome {
	existing, err := s.bookings.FindActiveForRoom(ctx, date, roomID, excludeID)
	if err != nil {
		return unknown(err)
	}
	if out := CheckAgainst(existing, startMinutes, endMinutes, excludeID); out.Status != StatusAvailable {
		return out
	}

	if instructorID != nil {
		byInstructor, err := s.bookings.FindActiveForInstructor(ctx, date, *instructorID, excludeID)
		if err != nil {
			return unknown(err)
		}
		if out := CheckAgainst(byInstructor, startMinutes, endMinutes, excludeID); out.Status != StatusAvailable {
			return out
		}
	}

	return available()
}

// CheckInstructor reports whether an instructor is free for the interval,
// independent of the room's own calendar.
func (s *Service) CheckInstructor(ctx context.Context, instructorID int64, dateStr string, startMinutes, durationMinutes int) (*InstructorAvailabilityResponse, error) {
	if !s.validDuration(durationMinutes) {
		return nil, ErrValidation
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	existing, err := s.bookings.FindActiveForInstructor(ctx, date, instructorID, 0)
	if err != nil {
		return nil, err
	}
	out := CheckAgainst(existing, startMinutes, startMinutes+durationMinutes, 0)

	return &InstructorAvailabilityResponse{
		InstructorID: instructorID,
		Date:         dateStr,
		StartTime:    clock24(startMinutes),
		Duration:     durationMinutes,
		Available:    out.Status == StatusAvailable,
	}, nil
}

// ListInstructors returns the active roster for the storefront picker.
func (s *Service) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	return s.instructors.ListActive(ctx)
}
