package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"

	"musicstudio/internal/domain"
	"musicstudio/internal/repository"
)

// Result tells the handler how an event landed.
type Result string

const (
	ResultProcessed Result = "processed"
	ResultDuplicate Result = "duplicate"
	ResultIgnored   Result = "ignored"
)

type Service struct {
	bookings bookingStore
	events   eventStore
	notifs   notifier
}

func NewService(bookings bookingStore, events eventStore, notifs notifier) *Service {
	return &Service{
		bookings: bookings,
		events:   events,
		notifs:   notifs,
	}
}

// HandleEvent applies a verified provider event to the referenced booking.
// The event is recorded first; a duplicate provider event id short-circuits
// so replayed deliveries cannot double-apply.
func (s *Service) HandleEvent(ctx context.Context, evt stripe.Event, rawBody []byte) (Result, error) {
	rec := &domain.PaymentEvent{
		Provider:        "stripe",
		ProviderEventID: evt.ID,
		EventType:       string(evt.Type),
		Payload:         rawBody,
	}
	if err := s.events.Insert(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateEvent) {
			log.Printf("payment_event_duplicate provider_event_id=%s type=%s", evt.ID, evt.Type)
			return ResultDuplicate, nil
		}
		return "", err
	}

	switch evt.Type {
	case "checkout.session.completed":
		return s.applySession(ctx, evt, domain.PaymentPaid)
	case "checkout.session.expired":
		return s.applySession(ctx, evt, domain.PaymentExpired)
	case "payment_intent.payment_failed":
		return s.applyIntent(ctx, evt, domain.PaymentFailed)
	default:
		log.Printf("payment_event_ignored provider_event_id=%s type=%s", evt.ID, evt.Type)
		return ResultIgnored, nil
	}
}

func (s *Service) applySession(ctx context.Context, evt stripe.Event, status domain.PaymentStatus) (Result, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return "", err
	}
	return s.apply(ctx, session.Metadata["booking_reference"], status)
}

func (s *Service) applyIntent(ctx context.Context, evt stripe.Event, status domain.PaymentStatus) (Result, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(evt.Data.Raw, &intent); err != nil {
		return "", err
	}
	return s.apply(ctx, intent.Metadata["booking_reference"], status)
}

func (s *Service) apply(ctx context.Context, ref string, status domain.PaymentStatus) (Result, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrUnknownBooking
	}

	b, err := s.bookings.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnknownBooking
		}
		return "", err
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, b.ID, status); err != nil {
		return "", err
	}

	// A paid pending booking is confirmed; payment state otherwise stays
	// orthogonal to the booking lifecycle.
	if status == domain.PaymentPaid && b.Status == domain.BookingPending {
		if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed); err != nil {
			return "", err
		}
		b.Status = domain.BookingConfirmed
		if s.notifs != nil {
			s.notifs.NotifyPaymentReceived(ctx, b)
		}
	}

	log.Printf("payment_status_applied booking=%s status=%s", ref, status)
	return ResultProcessed, nil
}
