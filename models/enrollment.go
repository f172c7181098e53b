package models

import "time"

// Enrollment statuses. "dropped" is part of the schema but no operation
// currently sets it.
const (
	EnrollmentStatusEnrolled  = "enrolled"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusDropped   = "dropped"
)

// Enrollment associates a student with a course. At most one row may exist
// per (course_id, student_id); the unique index is the authority for that,
// not any precondition check. Rows are removed outright (no soft delete) so
// a student can re-enroll after a teacher removes them.
type Enrollment struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	CourseID       uint       `json:"course_id" gorm:"uniqueIndex:idx_course_student;not null"`
	StudentID      uint       `json:"student_id" gorm:"uniqueIndex:idx_course_student;not null"`
	Status         string     `json:"status" gorm:"default:'enrolled'"`
	Score          *float64   `json:"score"` // 0-100, two decimals; nil until first study
	EnrollmentDate time.Time  `json:"enrollment_date"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Course         Course     `json:"-" gorm:"foreignKey:CourseID"`
	Student        User       `json:"-" gorm:"foreignKey:StudentID"`
}

func (Enrollment) TableName() string {
	return "course_enrollments"
}
