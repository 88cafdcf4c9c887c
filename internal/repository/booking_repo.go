package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Reference       string     `gorm:"column:reference;uniqueIndex"`
	RoomID          int64      `gorm:"column:room_id;index"`
	ServiceType     string     `gorm:"column:service_type"`
	UserID          int64      `gorm:"column:user_id;index"`
	InstructorID    *int64     `gorm:"column:instructor_id;index"`
	BookingDate     time.Time  `gorm:"column:booking_date;index"`
	StartMinutes    int        `gorm:"column:start_minutes"`
	EndMinutes      int        `gorm:"column:end_minutes"`
	DurationMinutes int        `gorm:"column:duration_minutes"`
	Status          string     `gorm:"column:status;index"`
	PaymentStatus   string     `gorm:"column:payment_status"`
	TotalAmount     float64    `gorm:"column:total_amount"`
	RefundAmount    *float64   `gorm:"column:refund_amount"`
	ReschedulingFee *float64   `gorm:"column:rescheduling_fee"`
	RescheduledFrom *int64     `gorm:"column:rescheduled_from"`
	Notes           *string    `gorm:"column:notes"`
	CancelReason    *string    `gorm:"column:cancellation_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes, reason string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.CancelReason != nil {
		reason = *m.CancelReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		Reference:          m.Reference,
		RoomID:             m.RoomID,
		ServiceType:        domain.ServiceType(m.ServiceType),
		UserID:             m.UserID,
		InstructorID:       m.InstructorID,
		BookingDate:        m.BookingDate,
		StartMinutes:       m.StartMinutes,
		EndMinutes:         m.EndMinutes,
		DurationMinutes:    m.DurationMinutes,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		TotalAmount:        m.TotalAmount,
		RefundAmount:       m.RefundAmount,
		ReschedulingFee:    m.ReschedulingFee,
		RescheduledFrom:    m.RescheduledFrom,
		Notes:              notes,
		CancellationReason: reason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes, reason *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:              b.ID,
		Reference:       b.Reference,
		RoomID:          b.RoomID,
		ServiceType:     string(b.ServiceType),
		UserID:          b.UserID,
		InstructorID:    b.InstructorID,
		BookingDate:     b.BookingDate,
		StartMinutes:    b.StartMinutes,
		EndMinutes:      b.EndMinutes,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		TotalAmount:     b.TotalAmount,
		RefundAmount:    b.RefundAmount,
		ReschedulingFee: b.ReschedulingFee,
		RescheduledFrom: b.RescheduledFrom,
		Notes:           notes,
		CancelReason:    reason,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

// overlapScope narrows a query to the bookings that can conflict with the
// half-open interval [startMinutes, endMinutes) on the given date.
func overlapScope(q *gorm.DB, date time.Time, startMinutes, endMinutes int, excludeID int64) *gorm.DB {
	q = q.Where("booking_date = ?", date).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_minutes < ? AND end_minutes > ?", endMinutes, startMinutes)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return q
}

// CreateChecked inserts the booking after re-checking the room scope, and the
// instructor scope when one is assigned, for overlap inside one transaction. On Postgres the idx_no_overbooking exclusion
// constraint backs this up; constraint violations also map to ErrOverlapping.
func (r *BookingRepository) CreateChecked(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		q := overlapScope(tx.Model(&bookingModel{}), b.BookingDate, b.StartMinutes, b.EndMinutes, 0).
			Where("room_id = ?", b.RoomID)
		if err := q.Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlapping
		}

		if b.InstructorID != nil {
			q := overlapScope(tx.Model(&bookingModel{}), b.BookingDate, b.StartMinutes, b.EndMinutes, 0).
				Where("instructor_id = ?", *b.InstructorID)
			if err := q.Count(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				return ErrOverlapping
			}
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
	if err != nil {
		if isOverbookingConstraint(err) {
			return ErrOverlapping
		}
		return err
	}
	return nil
}

func isOverbookingConstraint(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23P01 exclusion_violation, 23505 unique_violation
		return (pgErr.Code == "23P01" || pgErr.Code == "23505") &&
			pgErr.ConstraintName == "idx_no_overbooking"
	}
	return false
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("reference = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindActiveForRoom returns the non-cancelled bookings for a room on a date,
// ordered by start time. excludeID skips one booking (reschedule against self).
func (r *BookingRepository) FindActiveForRoom(ctx context.Context, date time.Time, roomID, excludeID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	q := r.db.WithContext(ctx).
		Where("booking_date = ?", date).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Order("start_minutes ASC")
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// FindActiveForInstructor is FindActiveForRoom scoped by instructor instead of room.
func (r *BookingRepository) FindActiveForInstructor(ctx context.Context, date time.Time, instructorID, excludeID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	q := r.db.WithContext(ctx).
		Where("booking_date = ?", date).
		Where("instructor_id = ?", instructorID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Order("start_minutes ASC")
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Cancel flips the booking to cancelled and records the reason and refund.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason string, refund float64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"refund_amount":       refund,
			"cancelled_at":        now,
			"updated_at":          now,
		}).Error
}

// Reschedule atomically supersedes old with repl: the replacement interval is
// re-checked for overlap on both the room and instructor scopes (excluding the
// old row), the old row is cancelled and
// the replacement is inserted confirmed with the fee and back-link. The old
// row goes first so a move into its own former slot clears the exclusion
// constraint.
func (r *BookingRepository) Reschedule(ctx context.Context, old *domain.Booking, repl *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		q := overlapScope(tx.Model(&bookingModel{}), repl.BookingDate, repl.StartMinutes, repl.EndMinutes, old.ID).
			Where("room_id = ?", repl.RoomID)
		if err := q.Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlapping
		}

		if repl.InstructorID != nil {
			q := overlapScope(tx.Model(&bookingModel{}), repl.BookingDate, repl.StartMinutes, repl.EndMinutes, old.ID).
				Where("instructor_id = ?", *repl.InstructorID)
			if err := q.Count(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				return ErrOverlapping
			}
		}

		now := time.Now().UTC()
		if err := tx.Model(&bookingModel{}).
			Where("id = ?", old.ID).
			Updates(map[string]interface{}{
				"status":              string(domain.BookingCancelled),
				"cancellation_reason": "superseded by reschedule",
				"cancelled_at":        now,
				"updated_at":          now,
			}).Error; err != nil {
			return err
		}

		m := toBookingModel(repl)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		*repl = *toDomainBooking(m)
		return nil
	})
	if err != nil {
		if isOverbookingConstraint(err) {
			return ErrOverlapping
		}
		return err
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": string(status),
			"updated_at":     time.Now().UTC(),
		}).Error
}

// BookingFilter narrows admin listings. Zero values mean "no filter".
type BookingFilter struct {
	DateFrom time.Time
	DateTo   time.Time
	Status   domain.BookingStatus
	Limit    int
	Offset   int
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).
		Order("booking_date ASC, start_minutes ASC")
	if !f.DateFrom.IsZero() {
		q = q.Where("booking_date >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("booking_date <= ?", f.DateTo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var ms []bookingModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// RevenueTotals aggregates money movement for the admin dashboard.
type RevenueTotals struct {
	Bookings int64   `json:"bookings"`
	Gross    float64 `json:"gross"`
	Refunds  float64 `json:"refunds"`
	Fees     float64 `json:"fees"`
}

func (r *BookingRepository) Revenue(ctx context.Context, from, to time.Time) (*RevenueTotals, error) {
	var t RevenueTotals
	err := r.db.WithContext(ctx).Raw(`
SELECT
  COUNT(CASE WHEN status <> 'cancelled' THEN 1 END)                    AS bookings,
  COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_amount END), 0) AS gross,
  COALESCE(SUM(refund_amount), 0)                                      AS refunds,
  COALESCE(SUM(rescheduling_fee), 0)                                   AS fees
FROM bookings
WHERE booking_date >= ? AND booking_date <= ?`, from, to).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
