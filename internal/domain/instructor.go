package domain

import "time"

type Instructor struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Specialty ServiceType `json:"specialty"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
