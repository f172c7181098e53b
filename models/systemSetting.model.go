package models

import "gorm.io/gorm"

type SystemSetting struct {
	gorm.Model
	SettingKey   string `json:"setting_key" gorm:"unique;not null"`
	SettingValue string `json:"setting_value"`
	Description  string `json:"description"`
}
