package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"musicstudio/internal/database"
	"musicstudio/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testBooking(ref string, start, end int) *domain.Booking {
	return &domain.Booking{
		Reference:       ref,
		RoomID:          1,
		ServiceType:     domain.ServiceRehearsal,
		UserID:          42,
		BookingDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartMinutes:    start,
		EndMinutes:      end,
		DurationMinutes: end - start,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		TotalAmount:     110,
	}
}

func TestBookingRepository_CreateChecked_RejectsOverlap(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	first := testBooking("BK-AAAA000001", 600, 720)
	require.NoError(t, repo.CreateChecked(ctx, first))
	assert.NotZero(t, first.ID)

	// Overlapping interval in the same room on the same date.
	second := testBooking("BK-AAAA000002", 660, 780)
	err := repo.CreateChecked(ctx, second)
	assert.ErrorIs(t, err, ErrOverlapping)

	// Back-to-back is allowed: [600,720) then [720,780).
	third := testBooking("BK-AAAA000003", 720, 780)
	assert.NoError(t, repo.CreateChecked(ctx, third))
}

func TestBookingRepository_CreateChecked_CancelledRowsDoNotBlock(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	first := testBooking("BK-AAAA000001", 600, 720)
	require.NoError(t, repo.CreateChecked(ctx, first))
	require.NoError(t, repo.Cancel(ctx, first.ID, "changed plans", 0))

	second := testBooking("BK-AAAA000002", 600, 720)
	assert.NoError(t, repo.CreateChecked(ctx, second))
}

func TestBookingRepository_CreateChecked_DuplicateReferenceRejected(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	first := testBooking("BK-AAAA000001", 600, 720)
	require.NoError(t, repo.CreateChecked(ctx, first))

	// Same reference in a free slot still violates the unique index.
	dup := testBooking("BK-AAAA000001", 840, 900)
	assert.Error(t, repo.CreateChecked(ctx, dup))
}

func TestBookingRepository_CreateChecked_InstructorScope(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	instructor := int64(5)
	first := testBooking("BK-AAAA000001", 600, 720)
	first.InstructorID = &instructor
	require.NoError(t, repo.CreateChecked(ctx, first))

	// Different room, same instructor, colliding time.
	second := testBooking("BK-AAAA000002", 660, 780)
	second.RoomID = 2
	second.InstructorID = &instructor
	err := repo.CreateChecked(ctx, second)
	assert.ErrorIs(t, err, ErrOverlapping)

	// Same slot without the instructor is fine in room 2.
	third := testBooking("BK-AAAA000003", 660, 780)
	third.RoomID = 2
	assert.NoError(t, repo.CreateChecked(ctx, third))
}

func TestBookingRepository_FindActiveForRoom_OrderedAndFiltered(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	late := testBooking("BK-AAAA000001", 900, 960)
	early := testBooking("BK-AAAA000002", 600, 660)
	cancelled := testBooking("BK-AAAA000003", 700, 760)
	require.NoError(t, repo.CreateChecked(ctx, late))
	require.NoError(t, repo.CreateChecked(ctx, early))
	require.NoError(t, repo.CreateChecked(ctx, cancelled))
	require.NoError(t, repo.Cancel(ctx, cancelled.ID, "no show", 0))

	found, err := repo.FindActiveForRoom(ctx, date, 1, 0)

	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, early.ID, found[0].ID)
	assert.Equal(t, late.ID, found[1].ID)
}

func TestBookingRepository_Reschedule(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	old := testBooking("BK-AAAA000001", 600, 720)
	old.Status = domain.BookingConfirmed
	require.NoError(t, repo.CreateChecked(ctx, old))

	fee := 11.0
	repl := testBooking("BK-AAAA000002", 840, 960)
	repl.Status = domain.BookingConfirmed
	repl.ReschedulingFee = &fee
	repl.RescheduledFrom = &old.ID

	require.NoError(t, repo.Reschedule(ctx, old, repl))
	assert.NotZero(t, repl.ID)

	// Old row is superseded, new row carries the back-link.
	oldAfter, err := repo.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, oldAfter.Status)

	replAfter, err := repo.GetByID(ctx, repl.ID)
	require.NoError(t, err)
	require.NotNil(t, replAfter.RescheduledFrom)
	assert.Equal(t, old.ID, *replAfter.RescheduledFrom)
	require.NotNil(t, replAfter.ReschedulingFee)
	assert.Equal(t, 11.0, *replAfter.ReschedulingFee)
}

func TestBookingRepository_Reschedule_MoveWithinOwnSlot(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	old := testBooking("BK-AAAA000001", 600, 720)
	require.NoError(t, repo.CreateChecked(ctx, old))

	// Shift by 30 minutes into the booking's own old interval.
	repl := testBooking("BK-AAAA000002", 630, 750)
	repl.RescheduledFrom = &old.ID

	assert.NoError(t, repo.Reschedule(ctx, old, repl))
}

func TestBookingRepository_Reschedule_InstructorScope(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	instructor := int64(5)
	held := testBooking("BK-AAAA000001", 600, 720)
	held.InstructorID = &instructor
	require.NoError(t, repo.CreateChecked(ctx, held))

	// Booking in a different room, no instructor yet.
	old := testBooking("BK-AAAA000002", 840, 900)
	old.RoomID = 2
	require.NoError(t, repo.CreateChecked(ctx, old))

	// Moving it onto the instructor's held interval must fail even though
	// room 2 itself is free.
	repl := testBooking("BK-AAAA000003", 630, 750)
	repl.RoomID = 2
	repl.InstructorID = &instructor
	repl.RescheduledFrom = &old.ID
	err := repo.Reschedule(ctx, old, repl)
	assert.ErrorIs(t, err, ErrOverlapping)

	// Old row survives a rejected reschedule.
	oldAfter, err := repo.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, oldAfter.Status)
}

func TestBookingRepository_Revenue(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	kept := testBooking("BK-AAAA000001", 600, 720)
	require.NoError(t, repo.CreateChecked(ctx, kept))

	refunded := testBooking("BK-AAAA000002", 840, 900)
	require.NoError(t, repo.CreateChecked(ctx, refunded))
	require.NoError(t, repo.Cancel(ctx, refunded.ID, "sick", 55))

	totals, err := repo.Revenue(ctx, from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Bookings)
	assert.Equal(t, 110.0, totals.Gross)
	assert.Equal(t, 55.0, totals.Refunds)
}

func TestPaymentEventRepository_DuplicateProviderEvent(t *testing.T) {
	repo := NewPaymentEventRepository(testDB(t))
	ctx := context.Background()

	first := &domain.PaymentEvent{Provider: "stripe", ProviderEventID: "evt_1", EventType: "checkout.session.completed"}
	require.NoError(t, repo.Insert(ctx, first))

	dup := &domain.PaymentEvent{Provider: "stripe", ProviderEventID: "evt_1", EventType: "checkout.session.completed"}
	err := repo.Insert(ctx, dup)

	assert.ErrorIs(t, err, ErrDuplicateEvent)
}

func TestCheckInRepository_MarkUsedOnlyOnce(t *testing.T) {
	repo := NewCheckInRepository(testDB(t))
	ctx := context.Background()

	ci := &domain.CheckIn{BookingID: 7, Code: "token.tag", IssuedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, ci))

	burned, err := repo.MarkUsed(ctx, ci.ID)
	require.NoError(t, err)
	assert.True(t, burned)

	again, err := repo.MarkUsed(ctx, ci.ID)
	require.NoError(t, err)
	assert.False(t, again)
}
