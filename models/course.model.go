package models

import "gorm.io/gorm"

// Course is owned by exactly one teacher
type Course struct {
	gorm.Model
	TeacherID   uint   `json:"teacher_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Teacher     User   `json:"-" gorm:"foreignKey:TeacherID"`
}

// CourseContent is a lesson/assignment entry inside a course
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Content     string `json:"content"`
	ContentType string `json:"content_type" gorm:"default:'lesson'"` // lesson, assignment, quiz
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
}
