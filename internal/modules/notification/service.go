package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"musicstudio/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service delivers booking lifecycle notifications over email and pushes the
// same events to the staff websocket feed. All delivery is best-effort; a
// failed send is logged and never fails the triggering operation.
type Service struct {
	users UserRepository
	email EmailSender
	hub   *Hub
}

func NewService(users UserRepository, email EmailSender, hub *Hub) *Service {
	return &Service{users: users, email: email, hub: hub}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, b *domain.Booking) {
	s.broadcast(EventBookingCreated, b)
	s.send(ctx, b.UserID, "Booking received: "+b.Reference, fmt.Sprintf(
		"Your %s booking %s is reserved for %s %s.\nComplete payment to confirm it.",
		b.ServiceType, b.Reference, b.BookingDate.Format("2006-01-02"), b.ClockRange(),
	))
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, refund float64) {
	s.broadcast(EventBookingCancelled, b)
	s.send(ctx, b.UserID, "Booking cancelled: "+b.Reference, fmt.Sprintf(
		"Your booking %s for %s %s has been cancelled.\nRefund amount: %.2f.",
		b.Reference, b.BookingDate.Format("2006-01-02"), b.ClockRange(), refund,
	))
}

func (s *Service) NotifyBookingRescheduled(ctx context.Context, old, repl *domain.Booking, fee float64) {
	s.broadcast(EventBookingRescheduled, repl)
	s.send(ctx, repl.UserID, "Booking rescheduled: "+repl.Reference, fmt.Sprintf(
		"Your booking %s moved from %s %s to %s %s.\nRescheduling fee: %.2f.",
		old.Reference,
		old.BookingDate.Format("2006-01-02"), old.ClockRange(),
		repl.BookingDate.Format("2006-01-02"), repl.ClockRange(),
		fee,
	))
}

func (s *Service) NotifyPaymentReceived(ctx context.Context, b *domain.Booking) {
	s.broadcast(EventPaymentReceived, b)
	s.send(ctx, b.UserID, "Booking confirmed: "+b.Reference, fmt.Sprintf(
		"Payment received. Your %s booking %s on %s %s is confirmed.",
		b.ServiceType, b.Reference, b.BookingDate.Format("2006-01-02"), b.ClockRange(),
	))
}

func (s *Service) broadcast(eventType string, b *domain.Booking) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(&Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    b,
	})
}

func (s *Service) send(ctx context.Context, userID int64, subject, body string) {
	if s.email == nil {
		return
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("notification_skip user_id=%d subject=%q error=%q", userID, subject, err)
		return
	}
	if err := s.email.Send(u.Email, subject, body); err != nil {
		log.Printf("notification_send_failed user_id=%d subject=%q error=%q", userID, subject, err)
	}
}
