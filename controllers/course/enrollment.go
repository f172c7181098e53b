package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	"komodohub/utils"
)

// EnrollInCourse enrolls the calling student into a course. The insert is
// the uniqueness check: a duplicate-key error means the student is already
// enrolled, including the case where a concurrent request won the race.
func EnrollInCourse(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment := models.Enrollment{
		CourseID:       courseID,
		StudentID:      studentID,
		Status:         models.EnrollmentStatusEnrolled,
		EnrollmentDate: time.Now(),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// StudyCourse records a study session. The first study assigns a random
// score in [60,95] and marks the enrollment completed; every further study
// is a retake that raises the score by [1,10] capped at 100. Studying an
// already completed course is always allowed.
func StudyCourse(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("course_id = ? AND student_id = ?", courseID, studentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	var newScore float64
	var message string
	if enrollment.Score == nil {
		newScore = utils.FirstStudyScore()
		message = fmt.Sprintf("Congratulations on completing the course! Your score is %.2f", newScore)
	} else {
		newScore = utils.RetakeScore(*enrollment.Score)
		message = fmt.Sprintf("Your score improved from %.2f to %.2f", *enrollment.Score, newScore)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"score":        newScore,
		"status":       models.EnrollmentStatusCompleted,
		"completed_at": now,
	}
	if err := db.Model(&enrollment).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, enrollment)
}

// GetMyEnrollments lists the calling student's enrollments with course and
// teacher details, enrolled courses first.
func GetMyEnrollments(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type EnrolledCourse struct {
		CourseID       uint       `json:"course_id"`
		Title          string     `json:"title"`
		Description    string     `json:"description"`
		TeacherName    string     `json:"teacher_name"`
		Status         string     `json:"status"`
		Score          *float64   `json:"score"`
		EnrollmentDate time.Time  `json:"enrollment_date"`
		CompletedAt    *time.Time `json:"completed_at"`
	}

	var courses []EnrolledCourse
	err := database.Database.Db.Table("course_enrollments").
		Select(`courses.id as course_id, courses.title, courses.description,
			users.full_name as teacher_name, course_enrollments.status, course_enrollments.score,
			course_enrollments.enrollment_date, course_enrollments.completed_at`).
		Joins("JOIN courses ON courses.id = course_enrollments.course_id AND courses.deleted_at IS NULL").
		Joins("JOIN users ON users.id = courses.teacher_id").
		Where("course_enrollments.student_id = ?", studentID).
		Order("CASE WHEN course_enrollments.status = 'enrolled' THEN 1 WHEN course_enrollments.status = 'completed' THEN 2 ELSE 3 END").
		Order("course_enrollments.enrollment_date DESC").
		Scan(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": courses,
		"total":       len(courses),
	})
}

// GetAvailableCourses lists courses the calling student has not enrolled in.
func GetAvailableCourses(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type AvailableCourse struct {
		CourseID         uint   `json:"course_id"`
		Title            string `json:"title"`
		Description      string `json:"description"`
		TeacherName      string `json:"teacher_name"`
		EnrolledStudents int64  `json:"enrolled_students"`
	}

	var courses []AvailableCourse
	err := database.Database.Db.Table("courses").
		Select(`courses.id as course_id, courses.title, courses.description,
			users.full_name as teacher_name,
			(SELECT COUNT(*) FROM course_enrollments WHERE course_enrollments.course_id = courses.id) as enrolled_students`).
		Joins("JOIN users ON users.id = courses.teacher_id").
		Where("courses.deleted_at IS NULL").
		Where("courses.id NOT IN (?)",
			database.Database.Db.Model(&models.Enrollment{}).Select("course_id").Where("student_id = ?", studentID)).
		Order("courses.created_at DESC").
		Scan(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Available courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}
