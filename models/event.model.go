package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title           string `json:"title" gorm:"not null"`
	Description     string `json:"description" gorm:"not null"`
	OrganizerID     uint   `json:"organizer_id" gorm:"index;not null"`
	EventDate       string `json:"event_date" gorm:"not null"` // YYYY-MM-DD
	EventTime       string `json:"event_time"`                 // HH:MM
	Location        string `json:"location"`
	MaxParticipants *int   `json:"max_participants"`
	Status          string `json:"status" gorm:"default:'upcoming'"` // upcoming, ongoing, completed, cancelled
	Organizer       User   `json:"-" gorm:"foreignKey:OrganizerID"`
}

// EventParticipant is an insert-if-absent registration row; the unique index
// on (event_id, user_id) rejects duplicates. Hard-deleted like enrollments.
type EventParticipant struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	EventID   uint      `json:"event_id" gorm:"uniqueIndex:idx_event_user;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_event_user;not null"`
	Status    string    `json:"status" gorm:"default:'registered'"` // registered, attended, cancelled
	CreatedAt time.Time `json:"created_at"`
}
