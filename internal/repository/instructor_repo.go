package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type InstructorRepository struct {
	db *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

type instructorModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Specialty string    `gorm:"column:specialty"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (instructorModel) TableName() string { return "instructors" }

func toDomainInstructor(m instructorModel) *domain.Instructor {
	return &domain.Instructor{
		ID:        m.ID,
		Name:      m.Name,
		Specialty: domain.ServiceType(m.Specialty),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	var m instructorModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainInstructor(m), nil
}

func (r *InstructorRepository) ListActive(ctx context.Context) ([]domain.Instructor, error) {
	var ms []instructorModel
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Instructor, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainInstructor(m))
	}
	return out, nil
}
