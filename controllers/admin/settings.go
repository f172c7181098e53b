package adminController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
)

var defaultSettings = []models.SystemSetting{
	{SettingKey: "system_theme", SettingValue: "default", Description: "System theme"},
	{SettingKey: "background_color", SettingValue: "#ffffff", Description: "Background color"},
	{SettingKey: "layout_style", SettingValue: "standard", Description: "Layout style"},
	{SettingKey: "max_articles_per_page", SettingValue: "10", Description: "Articles per page"},
	{SettingKey: "allow_registration", SettingValue: "true", Description: "Allow user registration"},
	{SettingKey: "maintenance_mode", SettingValue: "false", Description: "Maintenance mode"},
	{SettingKey: "session_timeout", SettingValue: "60", Description: "Session timeout in minutes"},
	{SettingKey: "backup_interval", SettingValue: "7", Description: "Backup interval in days"},
}

// GetSystemSettings returns all settings, seeding the defaults for any
// key not present yet
func GetSystemSettings(c *fiber.Ctx) error {
	db := database.Database.Db

	for _, s := range defaultSettings {
		setting := s
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load settings!", nil)
		}
	}

	var settings []models.SystemSetting
	if err := db.Order("setting_key").Find(&settings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load settings!", nil)
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.SettingKey] = s.SettingValue
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully!", result)
}

// UpdateSystemSettings upserts the submitted key/value pairs
func UpdateSystemSettings(c *fiber.Ctx) error {
	reqData := make(map[string]string)
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if len(reqData) == 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"settings": "At least one setting is required!",
		})
	}

	db := database.Database.Db

	for key, value := range reqData {
		setting := models.SystemSetting{SettingKey: key, SettingValue: value}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
		}).Create(&setting).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update settings!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings updated successfully!", nil)
}
