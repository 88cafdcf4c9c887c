package booking

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"musicstudio/internal/domain"
	"musicstudio/internal/modules/availability"
	"musicstudio/internal/modules/policy"
	"musicstudio/internal/repository"
)

// Config bounds what a booking request may ask for.
type Config struct {
	OpenMinutes        int
	CloseMinutes       int
	MinDurationMinutes int
	MaxDurationMinutes int
}

type Service struct {
	bookings    BookingRepository
	rooms       RoomRepository
	instructors InstructorRepository
	checker     ConflictChecker
	policies    PolicyEvaluator
	notifs      NotificationSender
	cfg         Config
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	instructors InstructorRepository,
	checker ConflictChecker,
	policies PolicyEvaluator,
	notifs NotificationSender,
	cfg Config,
) *Service {
	return &Service{
		bookings:    bookings,
		rooms:       rooms,
		instructors: instructors,
		checker:     checker,
		policies:    policies,
		notifs:      notifs,
		cfg:         cfg,
	}
}

func newReference() string {
	id := strings.ToUpper(uuid.NewString())
	return "BK-" + strings.ReplaceAll(id, "-", "")[:10]
}

func (s *Service) validateInterval(startMinutes, durationMinutes int) error {
	if durationMinutes < s.cfg.MinDurationMinutes || durationMinutes > s.cfg.MaxDurationMinutes {
		return ErrValidation
	}
	if startMinutes < s.cfg.OpenMinutes || startMinutes+durationMinutes > s.cfg.CloseMinutes {
		return ErrValidation
	}
	return nil
}

func parseDate(dateStr string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CreateBooking validates the request, runs the conflict check and inserts a
// pending booking. The storage layer re-checks inside its transaction, so a
// race between two concurrent requests resolves to exactly one ErrOverbooking.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	service := domain.ServiceType(req.Service)
	if !service.Valid() {
		return nil, ErrValidation
	}
	if err := s.validateInterval(req.StartMinutes, req.DurationMinutes); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}

	start := date.Add(time.Duration(req.StartMinutes) * time.Minute)
	if start.Before(time.Now().UTC()) {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByServiceType(ctx, service)
	if err != nil {
		return nil, err
	}

	if req.InstructorID != nil {
		inst, err := s.instructors.GetByID(ctx, *req.InstructorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInstructorUnavailable
			}
			return nil, err
		}
		if !inst.IsActive || inst.Specialty != service {
			return nil, ErrInstructorUnavailable
		}
	}

	endMinutes := req.StartMinutes + req.DurationMinutes
	out := s.checker.CheckSlot(ctx, room.ID, date, req.StartMinutes, endMinutes, req.InstructorID, 0)
	switch out.Status {
	case availability.StatusConflict:
		return nil, ErrNotAvailable
	case availability.StatusUnknown:
		// A failed lookup is never "available".
		return nil, out.Err
	}

	total := room.HourlyRate * float64(req.DurationMinutes) / 60
	total = math.Round(total*100) / 100

	b := &domain.Booking{
		Reference:       newReference(),
		RoomID:          room.ID,
		ServiceType:     service,
		UserID:          req.UserID,
		InstructorID:    req.InstructorID,
		BookingDate:     date,
		StartMinutes:    req.StartMinutes,
		EndMinutes:      endMinutes,
		DurationMinutes: req.DurationMinutes,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		TotalAmount:     total,
		Notes:           req.Notes,
	}

	if err := s.bookings.CreateChecked(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlapping) {
			return nil, ErrOverbooking
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyBookingCreated(ctx, b)
	}
	return b, nil
}

// CancelBooking evaluates the cancellation policy and flips the booking to
// cancelled with the computed refund. A 0% tier still cancels; only a missing
// tier stops the operation.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorUserID int64, actorRole, reason string) (*CancelBookingResponse, error) {
	b, err := s.loadForActor(ctx, bookingID, actorUserID, actorRole)
	if err != nil {
		return nil, err
	}
	if !b.CanBeCancelled() {
		return nil, ErrInvalidStatusTransition
	}

	eval, err := s.policies.Evaluate(ctx, domain.PolicyCancellation, b.TotalAmount, b.ScheduledStart(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Cancel(ctx, b.ID, reason, eval.Amount); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyBookingCancelled(ctx, b, eval.Amount)
	}

	return &CancelBookingResponse{
		BookingID:    b.ID,
		Status:       string(domain.BookingCancelled),
		RefundAmount: eval.Amount,
		Policy:       eval,
	}, nil
}

// PreviewCancellation quotes the refund terms without touching the booking.
func (s *Service) PreviewCancellation(ctx context.Context, bookingID, actorUserID int64, actorRole string) (*policy.Evaluation, error) {
	b, err := s.loadForActor(ctx, bookingID, actorUserID, actorRole)
	if err != nil {
		return nil, err
	}
	if !b.CanBeCancelled() {
		return nil, ErrInvalidStatusTransition
	}
	return s.policies.Evaluate(ctx, domain.PolicyCancellation, b.TotalAmount, b.ScheduledStart(), time.Now().UTC())
}

// RescheduleBooking moves a booking to a new date/time: the old row is
// cancelled as superseded and a fresh confirmed row is created with the
// rescheduling fee and a back-link. Inside the cutoff window the move is
// refused outright.
func (s *Service) RescheduleBooking(ctx context.Context, bookingID, actorUserID int64, actorRole string, req RescheduleBookingRequest) (*RescheduleBookingResponse, error) {
	old, err := s.loadForActor(ctx, bookingID, actorUserID, actorRole)
	if err != nil {
		return nil, err
	}
	if !old.CanBeRescheduled() {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.validateInterval(req.StartMinutes, old.DurationMinutes); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	newStart := date.Add(time.Duration(req.StartMinutes) * time.Minute)
	if newStart.Before(time.Now().UTC()) {
		return nil, ErrValidation
	}

	eval, err := s.policies.Evaluate(ctx, domain.PolicyRescheduling, old.TotalAmount, old.ScheduledStart(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !eval.Allowed {
		return nil, ErrRescheduleNotAllowed
	}

	endMinutes := req.StartMinutes + old.DurationMinutes
	out := s.checker.CheckSlot(ctx, old.RoomID, date, req.StartMinutes, endMinutes, old.InstructorID, old.ID)
	switch out.Status {
	case availability.StatusConflict:
		return nil, ErrNotAvailable
	case availability.StatusUnknown:
		return nil, out.Err
	}

	fee := eval.Amount
	repl := &domain.Booking{
		Reference:       newReference(),
		RoomID:          old.RoomID,
		ServiceType:     old.ServiceType,
		UserID:          old.UserID,
		InstructorID:    old.InstructorID,
		BookingDate:     date,
		StartMinutes:    req.StartMinutes,
		EndMinutes:      endMinutes,
		DurationMinutes: old.DurationMinutes,
		Status:          domain.BookingConfirmed,
		PaymentStatus:   old.PaymentStatus,
		TotalAmount:     old.TotalAmount,
		ReschedulingFee: &fee,
		RescheduledFrom: &old.ID,
		Notes:           old.Notes,
	}

	if err := s.bookings.Reschedule(ctx, old, repl); err != nil {
		if errors.Is(err, repository.ErrOverlapping) {
			return nil, ErrOverbooking
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyBookingRescheduled(ctx, old, repl, fee)
	}

	return &RescheduleBookingResponse{
		BookingID:       repl.ID,
		Reference:       repl.Reference,
		RescheduledFrom: old.ID,
		ReschedulingFee: fee,
		Policy:          eval,
	}, nil
}

// GetBooking returns a booking the actor may see.
func (s *Service) GetBooking(ctx context.Context, bookingID, actorUserID int64, actorRole string) (*domain.Booking, error) {
	return s.loadForActor(ctx, bookingID, actorUserID, actorRole)
}

func (s *Service) loadForActor(ctx context.Context, bookingID, actorUserID int64, actorRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actorRole != string(domain.RoleAdmin) && actorRole != string(domain.RoleStaff) && b.UserID != actorUserID {
		return nil, ErrForbidden
	}
	return b, nil
}
