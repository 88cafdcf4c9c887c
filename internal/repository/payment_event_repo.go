package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"musicstudio/internal/domain"
)

type PaymentEventRepository struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) *PaymentEventRepository {
	return &PaymentEventRepository{db: db}
}

type paymentEventModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	Provider        string    `gorm:"column:provider"`
	ProviderEventID string    `gorm:"column:provider_event_id;uniqueIndex"`
	EventType       string    `gorm:"column:event_type"`
	Payload         []byte    `gorm:"column:payload"`
	ReceivedAt      time.Time `gorm:"column:received_at"`
}

func (paymentEventModel) TableName() string { return "payment_events" }

// Insert records a provider event; a replayed event id yields ErrDuplicateEvent.
func (r *PaymentEventRepository) Insert(ctx context.Context, e *domain.PaymentEvent) error {
	m := paymentEventModel{
		Provider:        e.Provider,
		ProviderEventID: e.ProviderEventID,
		EventType:       e.EventType,
		Payload:         e.Payload,
		ReceivedAt:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEvent
		}
		return err
	}
	e.ID = m.ID
	e.ReceivedAt = m.ReceivedAt
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (local dev and tests)
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
