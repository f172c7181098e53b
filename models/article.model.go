package models

import "gorm.io/gorm"

type Article struct {
	gorm.Model
	Title    string `json:"title" gorm:"not null"`
	AuthorID uint   `json:"author_id" gorm:"index;not null"`
	Content  string `json:"content" gorm:"not null"`
	Author   User   `json:"-" gorm:"foreignKey:AuthorID"`
}
