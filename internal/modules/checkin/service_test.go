package checkin

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) Create(ctx context.Context, ci *domain.CheckIn) error {
	args := m.Called(ctx, ci)
	if ci != nil && args.Error(0) == nil {
		ci.ID = 55
	}
	return args.Error(0)
}

func (m *MockCheckInRepository) GetByCode(ctx context.Context, code string) (*domain.CheckIn, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) MarkUsed(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            7,
		UserID:        42,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}
}

func TestService_IssueCode_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCheckins := new(MockCheckInRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	mockCheckins.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockCheckins, "secret")

	ci, err := service.IssueCode(context.Background(), 7, 42, string(domain.RoleClient))

	assert.NoError(t, err)
	assert.Equal(t, int64(7), ci.BookingID)
	assert.False(t, ci.Used())

	// token.hmac shape, hex-encoded tag.
	parts := strings.Split(ci.Code, ".")
	assert.Len(t, parts, 2)
	assert.Len(t, parts[0], 32)
	assert.Len(t, parts[1], 64)
}

func TestService_IssueCode_OwnershipAndState(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	unpaid := confirmedBooking()
	unpaid.ID = 8
	unpaid.PaymentStatus = domain.PaymentPending
	mockBookings.On("GetByID", mock.Anything, int64(8)).Return(unpaid, nil)
	mockBookings.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, new(MockCheckInRepository), "secret")

	// Another client cannot issue a code; existence is not revealed.
	_, err := service.IssueCode(context.Background(), 7, 43, string(domain.RoleClient))
	assert.ErrorIs(t, err, ErrNotFound)

	// Unpaid bookings have nothing to check in for.
	_, err = service.IssueCode(context.Background(), 8, 42, string(domain.RoleClient))
	assert.ErrorIs(t, err, ErrNotCheckable)

	_, err = service.IssueCode(context.Background(), 9, 42, string(domain.RoleClient))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Redeem_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCheckins := new(MockCheckInRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	mockCheckins.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockCheckins, "secret")
	ci, err := service.IssueCode(context.Background(), 7, 42, string(domain.RoleClient))
	assert.NoError(t, err)

	mockCheckins.On("GetByCode", mock.Anything, ci.Code).Return(ci, nil)
	mockCheckins.On("MarkUsed", mock.Anything, int64(55)).Return(true, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingCompleted).Return(nil)

	b, err := service.Redeem(context.Background(), ci.Code)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
}

func TestService_Redeem_TamperedCodeRejectedBeforeStorage(t *testing.T) {
	mockCheckins := new(MockCheckInRepository)
	service := NewService(new(MockBookingRepository), mockCheckins, "secret")

	_, err := service.Redeem(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef.0000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = service.Redeem(context.Background(), "no-separator")
	assert.ErrorIs(t, err, ErrInvalidCode)

	mockCheckins.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
}

func TestService_Redeem_SecondUseRejected(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCheckins := new(MockCheckInRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	mockCheckins.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockCheckins, "secret")
	ci, err := service.IssueCode(context.Background(), 7, 42, string(domain.RoleClient))
	assert.NoError(t, err)

	mockCheckins.On("GetByCode", mock.Anything, ci.Code).Return(ci, nil)
	// Someone redeemed it between load and burn.
	mockCheckins.On("MarkUsed", mock.Anything, int64(55)).Return(false, nil)

	_, err = service.Redeem(context.Background(), ci.Code)

	assert.ErrorIs(t, err, ErrCodeUsed)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Redeem_DifferentSecretInvalidates(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCheckins := new(MockCheckInRepository)

	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	mockCheckins.On("Create", mock.Anything, mock.Anything).Return(nil)

	issuer := NewService(mockBookings, mockCheckins, "secret-a")
	ci, err := issuer.IssueCode(context.Background(), 7, 42, string(domain.RoleClient))
	assert.NoError(t, err)

	verifier := NewService(mockBookings, mockCheckins, "secret-b")
	_, err = verifier.Redeem(context.Background(), ci.Code)

	assert.ErrorIs(t, err, ErrInvalidCode)
}
