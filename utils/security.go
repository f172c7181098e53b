package utils

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"komodohub/models"
)

// LogSecurityEvent appends an audit row. Logging must never fail the
// request it describes, so errors are only printed.
func LogSecurityEvent(db *gorm.DB, userID *uint, action, description, ip, userAgent string) {
	entry := models.SecurityLog{
		EventID:     uuid.NewString(),
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   ip,
		UserAgent:   userAgent,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Error writing security log (%s): %v", action, err)
	}
}
