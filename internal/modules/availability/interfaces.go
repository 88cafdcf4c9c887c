package availability

import (
	"context"
	"time"

	"musicstudio/internal/domain"
)

// BookingRepository is the slice of booking storage this module reads.
type BookingRepository interface {
	FindActiveForRoom(ctx context.Context, date time.Time, roomID, excludeID int64) ([]domain.Booking, error)
	FindActiveForInstructor(ctx context.Context, date time.Time, instructorID, excludeID int64) ([]domain.Booking, error)
}

// RoomRepository resolves the room a service type runs in.
type RoomRepository interface {
	GetByServiceType(ctx context.Context, t domain.ServiceType) (*domain.Room, error)
}

// InstructorRepository backs the public instructor listing.
type InstructorRepository interface {
	ListActive(ctx context.Context) ([]domain.Instructor, error)
}
