package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

type checkInModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	BookingID int64      `gorm:"column:booking_id;index"`
	Code      string     `gorm:"column:code;uniqueIndex"`
	IssuedAt  time.Time  `gorm:"column:issued_at"`
	UsedAt    *time.Time `gorm:"column:used_at"`
}

func (checkInModel) TableName() string { return "check_ins" }

func toDomainCheckIn(m checkInModel) *domain.CheckIn {
	return &domain.CheckIn{
		ID:        m.ID,
		BookingID: m.BookingID,
		Code:      m.Code,
		IssuedAt:  m.IssuedAt,
		UsedAt:    m.UsedAt,
	}
}

func (r *CheckInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	m := checkInModel{
		BookingID: c.BookingID,
		Code:      c.Code,
		IssuedAt:  c.IssuedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = *toDomainCheckIn(m)
	return nil
}

func (r *CheckInRepository) GetByCode(ctx context.Context, code string) (*domain.CheckIn, error) {
	var m checkInModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainCheckIn(m), nil
}

// MarkUsed flips the code to used only if it is still unused; the affected-row
// count tells the caller whether someone got there first.
func (r *CheckInRepository) MarkUsed(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&checkInModel{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", time.Now().UTC())
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
