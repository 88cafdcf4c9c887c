package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	ServiceType string    `gorm:"column:service_type;uniqueIndex"`
	HourlyRate  float64   `gorm:"column:hourly_rate"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:          m.ID,
		Name:        m.Name,
		ServiceType: domain.ServiceType(m.ServiceType),
		HourlyRate:  m.HourlyRate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

// GetByServiceType resolves the room a service runs in. Unique index on
// service_type keeps the mapping one-to-one.
func (r *RoomRepository) GetByServiceType(ctx context.Context, t domain.ServiceType) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).Where("service_type = ?", string(t)).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}
