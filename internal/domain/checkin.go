package domain

import "time"

// CheckIn is a single-use code issued for a confirmed booking. The code string
// is what the storefront renders as a QR payload; this service never encodes
// images.
type CheckIn struct {
	ID        int64      `json:"id"`
	BookingID int64      `json:"booking_id" gorm:"index"`
	Code      string     `json:"code" gorm:"uniqueIndex"`
	IssuedAt  time.Time  `json:"issued_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

func (c *CheckIn) Used() bool {
	return c.UsedAt != nil
}
