package checkin

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type Service struct {
	bookings BookingRepository
	checkins CheckInRepository
	secret   []byte
}

func NewService(bookings BookingRepository, checkins CheckInRepository, secret string) *Service {
	return &Service{
		bookings: bookings,
		checkins: checkins,
		secret:   []byte(secret),
	}
}

// IssueCode creates a single-use check-in code for a confirmed, paid booking.
// The code is an opaque token plus an HMAC tag so the front desk can reject
// garbage input before touching storage.
func (s *Service) IssueCode(ctx context.Context, bookingID int64, actorID int64, actorRole string) (*domain.CheckIn, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actorRole != string(domain.RoleAdmin) && actorRole != string(domain.RoleStaff) && b.UserID != actorID {
		return nil, ErrNotFound
	}
	if b.Status != domain.BookingConfirmed || b.PaymentStatus != domain.PaymentPaid {
		return nil, ErrNotCheckable
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	ci := &domain.CheckIn{
		BookingID: b.ID,
		Code:      token + "." + s.sign(token),
		IssuedAt:  time.Now().UTC(),
	}
	if err := s.checkins.Create(ctx, ci); err != nil {
		return nil, err
	}
	return ci, nil
}

// Redeem validates a presented code, burns it and marks the booking completed.
func (s *Service) Redeem(ctx context.Context, code string) (*domain.Booking, error) {
	token, tag, ok := strings.Cut(code, ".")
	if !ok || !hmac.Equal([]byte(tag), []byte(s.sign(token))) {
		return nil, ErrInvalidCode
	}

	ci, err := s.checkins.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if ci.Used() {
		return nil, ErrCodeUsed
	}

	b, err := s.bookings.GetByID(ctx, ci.BookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, ErrNotCheckable
	}

	burned, err := s.checkins.MarkUsed(ctx, ci.ID)
	if err != nil {
		return nil, err
	}
	if !burned {
		return nil, ErrCodeUsed
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingCompleted); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCompleted
	return b, nil
}

func (s *Service) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
