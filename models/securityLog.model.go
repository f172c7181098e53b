package models

import (
	"time"
)

// SecurityLog is an append-only audit row. Never updated or deleted.
type SecurityLog struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	EventID     string    `json:"event_id" gorm:"uniqueIndex;not null"`
	UserID      *uint     `json:"user_id" gorm:"index"`
	Action      string    `json:"action" gorm:"not null"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
}
