package domain

import "time"

// PaymentEvent records every webhook delivery from the payment provider.
// The unique provider event id is what makes webhook processing idempotent:
// a replayed delivery fails the insert and is acknowledged without effect.
type PaymentEvent struct {
	ID              int64     `json:"id"`
	Provider        string    `json:"provider"`
	ProviderEventID string    `json:"provider_event_id" gorm:"uniqueIndex"`
	EventType       string    `json:"event_type"`
	Payload         []byte    `json:"-" gorm:"type:bytes"`
	ReceivedAt      time.Time `json:"received_at"`
}
