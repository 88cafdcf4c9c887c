package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"musicstudio/internal/domain"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindActiveForRoom(ctx context.Context, date time.Time, roomID, excludeID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, date, roomID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindActiveForInstructor(ctx context.Context, date time.Time, instructorID, excludeID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, date, instructorID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByServiceType(ctx context.Context, t domain.ServiceType) (*domain.Room, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockInstructorRepository struct {
	mock.Mock
}

func (m *MockInstructorRepository) ListActive(ctx context.Context) ([]domain.Instructor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instructor), args.Error(1)
}

func testConfig() Config {
	return Config{
		OpenMinutes:        8 * 60,
		CloseMinutes:       19 * 60,
		SlotStepMinutes:    60,
		GridOpenMinutes:    10 * 60,
		GridCloseMinutes:   20 * 60,
		GridStepMinutes:    30,
		MinDurationMinutes: 60,
		MaxDurationMinutes: 480,
	}
}

func TestService_GetAvailableSlots_FiltersConflicts(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByServiceType", mock.Anything, domain.ServiceRehearsal).
		Return(&domain.Room{ID: 3, ServiceType: domain.ServiceRehearsal}, nil)

	existing := []domain.Booking{
		{ID: 1, StartMinutes: 10 * 60, EndMinutes: 12 * 60, Status: domain.BookingConfirmed},
	}
	mockBookings.On("FindActiveForRoom", mock.Anything, mock.Anything, int64(3), int64(0)).
		Return(existing, nil)

	service := NewService(mockBookings, mockRooms, nil, testConfig())

	res, err := service.GetAvailableSlots(context.Background(), domain.ServiceRehearsal, "2026-09-10", 60)

	assert.NoError(t, err)
	// Hourly candidates 08:00-17:00 minus the 10:00 and 11:00 starts.
	assert.Len(t, res.Slots, 8)
	for _, s := range res.Slots {
		assert.False(t, Overlaps(s.StartMinutes, s.EndMinutes, 10*60, 12*60))
	}
}

func TestService_GetAvailableSlots_StorageFailurePropagates(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByServiceType", mock.Anything, domain.ServiceRecording).
		Return(&domain.Room{ID: 2}, nil)
	dbErr := errors.New("connection reset")
	mockBookings.On("FindActiveForRoom", mock.Anything, mock.Anything, int64(2), int64(0)).
		Return(nil, dbErr)

	service := NewService(mockBookings, mockRooms, nil, testConfig())

	res, err := service.GetAvailableSlots(context.Background(), domain.ServiceRecording, "2026-09-10", 60)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, dbErr)
}

func TestService_GetAvailableSlots_Validation(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockRoomRepository), nil, testConfig())

	_, err := service.GetAvailableSlots(context.Background(), "knitting", "2026-09-10", 60)
	assert.ErrorIs(t, err, ErrUnknownService)

	_, err = service.GetAvailableSlots(context.Background(), domain.ServiceRehearsal, "2026-09-10", 30)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.GetAvailableSlots(context.Background(), domain.ServiceRehearsal, "10/09/2026", 60)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_GetAvailabilityGrid_MarksOccupiedTicks(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)

	mockRooms.On("GetByServiceType", mock.Anything, domain.ServiceDance).
		Return(&domain.Room{ID: 4}, nil)
	existing := []domain.Booking{
		{ID: 1, StartMinutes: 11 * 60, EndMinutes: 12 * 60, Status: domain.BookingConfirmed},
	}
	mockBookings.On("FindActiveForRoom", mock.Anything, mock.Anything, int64(4), int64(0)).
		Return(existing, nil)

	service := NewService(mockBookings, mockRooms, nil, testConfig())

	res, err := service.GetAvailabilityGrid(context.Background(), domain.ServiceDance, "2026-09-10", 60)

	assert.NoError(t, err)
	assert.Len(t, res.Ticks, 20)

	byMinute := map[int]bool{}
	for _, tick := range res.Ticks {
		byMinute[tick.Minutes] = tick.Occupied
	}
	// Starting at 10:00 is free; 10:30 through 11:30 would collide.
	assert.False(t, byMinute[10*60])
	assert.True(t, byMinute[10*60+30])
	assert.True(t, byMinute[11*60])
	assert.True(t, byMinute[11*60+30])
	assert.False(t, byMinute[12*60])
}

func TestService_CheckSlot_UnknownOnRoomLookupFailure(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	dbErr := errors.New("timeout")
	mockBookings.On("FindActiveForRoom", mock.Anything, mock.Anything, int64(1), int64(0)).
		Return(nil, dbErr)

	service := NewService(mockBookings, new(MockRoomRepository), nil, testConfig())

	out := service.CheckSlot(context.Background(), 1, time.Now(), 600, 660, nil, 0)

	assert.Equal(t, StatusUnknown, out.Status)
	assert.ErrorIs(t, out.Err, dbErr)
}

func TestService_CheckSlot_InstructorScope(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	mockBookings.On("FindActiveForRoom", mock.Anything, date, int64(1), int64(0)).
		Return([]domain.Booking{}, nil)
	// The room is free but the instructor is teaching elsewhere.
	mockBookings.On("FindActiveForInstructor", mock.Anything, date, int64(9), int64(0)).
		Return([]domain.Booking{
			{ID: 5, StartMinutes: 600, EndMinutes: 720, Status: domain.BookingConfirmed},
		}, nil)

	service := NewService(mockBookings, new(MockRoomRepository), nil, testConfig())

	instructorID := int64(9)
	out := service.CheckSlot(context.Background(), 1, date, 630, 690, &instructorID, 0)

	assert.Equal(t, StatusConflict, out.Status)
	assert.Len(t, out.With, 1)
	assert.Equal(t, int64(5), out.With[0].ID)
}

func TestService_CheckInstructor(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	mockBookings.On("FindActiveForInstructor", mock.Anything, date, int64(2), int64(0)).
		Return([]domain.Booking{
			{ID: 1, StartMinutes: 540, EndMinutes: 600, Status: domain.BookingConfirmed},
		}, nil)

	service := NewService(mockBookings, new(MockRoomRepository), nil, testConfig())

	res, err := service.CheckInstructor(context.Background(), 2, "2026-09-10", 600, 60)

	assert.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "10:00", res.StartTime)
}

func TestService_ListInstructors(t *testing.T) {
	mockInstructors := new(MockInstructorRepository)
	mockInstructors.On("ListActive", mock.Anything).Return([]domain.Instructor{
		{ID: 1, Name: "Marina Petrova", Specialty: domain.ServiceMusicLesson, IsActive: true},
	}, nil)

	service := NewService(new(MockBookingRepository), new(MockRoomRepository), mockInstructors, testConfig())

	list, err := service.ListInstructors(context.Background())

	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
