package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

type policyModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	PolicyType         string    `gorm:"column:policy_type;index"`
	HoursBeforeBooking float64   `gorm:"column:hours_before_booking"`
	Percentage         float64   `gorm:"column:percentage"`
	Description        string    `gorm:"column:description"`
	IsActive           bool      `gorm:"column:is_active"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (policyModel) TableName() string { return "cancellation_policies" }

func toDomainPolicy(m policyModel) domain.CancellationPolicy {
	return domain.CancellationPolicy{
		ID:                 m.ID,
		PolicyType:         domain.PolicyType(m.PolicyType),
		HoursBeforeBooking: m.HoursBeforeBooking,
		Percentage:         m.Percentage,
		Description:        m.Description,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ListActiveByType returns active tiers ordered by hours_before_booking
// ascending, the order tier selection walks them in.
func (r *PolicyRepository) ListActiveByType(ctx context.Context, t domain.PolicyType) ([]domain.CancellationPolicy, error) {
	var ms []policyModel
	err := r.db.WithContext(ctx).
		Where("policy_type = ? AND is_active = ?", string(t), true).
		Order("hours_before_booking ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CancellationPolicy, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainPolicy(m))
	}
	return out, nil
}

func (r *PolicyRepository) List(ctx context.Context) ([]domain.CancellationPolicy, error) {
	var ms []policyModel
	err := r.db.WithContext(ctx).
		Order("policy_type ASC, hours_before_booking ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CancellationPolicy, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainPolicy(m))
	}
	return out, nil
}

func (r *PolicyRepository) Create(ctx context.Context, p *domain.CancellationPolicy) error {
	m := policyModel{
		PolicyType:         string(p.PolicyType),
		HoursBeforeBooking: p.HoursBeforeBooking,
		Percentage:         p.Percentage,
		Description:        p.Description,
		IsActive:           p.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = toDomainPolicy(m)
	return nil
}

func (r *PolicyRepository) Update(ctx context.Context, p *domain.CancellationPolicy) error {
	return r.db.WithContext(ctx).Model(&policyModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"hours_before_booking": p.HoursBeforeBooking,
			"percentage":           p.Percentage,
			"description":          p.Description,
			"is_active":            p.IsActive,
			"updated_at":           time.Now().UTC(),
		}).Error
}
