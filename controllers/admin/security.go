package adminController

import (
	"github.com/gofiber/fiber/v2"

	"komodohub/database"
	"komodohub/middleware"
)

// GetSecurityLogs returns the most recent audit entries with the acting
// user's name when the entry has one
func GetSecurityLogs(c *fiber.Ctx) error {
	type LogRow struct {
		ID          uint   `json:"id"`
		EventID     string `json:"event_id"`
		UserID      *uint  `json:"user_id"`
		Username    string `json:"username"`
		Action      string `json:"action"`
		Description string `json:"description"`
		IPAddress   string `json:"ip_address"`
		UserAgent   string `json:"user_agent"`
		CreatedAt   string `json:"created_at"`
	}

	var logs []LogRow
	err := database.Database.Db.Table("security_logs").
		Select(`security_logs.id, security_logs.event_id, security_logs.user_id,
			users.username, security_logs.action, security_logs.description,
			security_logs.ip_address, security_logs.user_agent, security_logs.created_at`).
		Joins("LEFT JOIN users ON users.id = security_logs.user_id").
		Order("security_logs.created_at DESC").
		Limit(100).
		Scan(&logs).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch security logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Security logs fetched successfully!", fiber.Map{
		"logs":  logs,
		"total": len(logs),
	})
}
