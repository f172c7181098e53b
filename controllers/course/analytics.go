package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"komodohub/database"
	"komodohub/middleware"
)

// CourseStats is the per-course rollup. Everything here is recomputed from
// enrollment rows on every read; nothing is stored or cached. AverageScore
// is nil when the course has no scored enrollments.
type CourseStats struct {
	CourseID          uint     `json:"course_id"`
	Title             string   `json:"title"`
	TotalStudents     int64    `json:"total_students"`
	CompletedStudents int64    `json:"completed_students"`
	AverageScore      *float64 `json:"average_score"`
	ExcellentStudents int64    `json:"excellent_students"` // score >= 90
	GoodStudents      int64    `json:"good_students"`      // 60 <= score < 90
	FailingStudents   int64    `json:"failing_students"`   // score < 60
}

// TeacherStats aggregates across all courses owned by one teacher
type TeacherStats struct {
	TotalCourses        int64    `json:"total_courses"`
	TotalStudents       int64    `json:"total_students"` // distinct students
	OverallAverageScore *float64 `json:"overall_average_score"`
	TotalCompletions    int64    `json:"total_completions"`
}

// courseStatsForTeacher computes per-course rollups for every course the
// teacher owns. SQL AVG ignores NULL scores, so unscored enrollments count
// toward total_students but never toward the average or the score bands.
func courseStatsForTeacher(db *gorm.DB, teacherID uint) ([]CourseStats, error) {
	var stats []CourseStats
	err := db.Table("courses").
		Select(`courses.id as course_id,
			courses.title,
			COUNT(course_enrollments.id) as total_students,
			COUNT(CASE WHEN course_enrollments.status = 'completed' THEN 1 END) as completed_students,
			AVG(course_enrollments.score) as average_score,
			COUNT(CASE WHEN course_enrollments.score >= 90 THEN 1 END) as excellent_students,
			COUNT(CASE WHEN course_enrollments.score >= 60 AND course_enrollments.score < 90 THEN 1 END) as good_students,
			COUNT(CASE WHEN course_enrollments.score < 60 THEN 1 END) as failing_students`).
		Joins("LEFT JOIN course_enrollments ON course_enrollments.course_id = courses.id").
		Where("courses.teacher_id = ? AND courses.deleted_at IS NULL", teacherID).
		Group("courses.id, courses.title, courses.created_at").
		Order("courses.created_at DESC").
		Scan(&stats).Error
	return stats, err
}

// overallStatsForTeacher computes the cross-course rollup for one teacher
func overallStatsForTeacher(db *gorm.DB, teacherID uint) (TeacherStats, error) {
	var stats TeacherStats
	err := db.Table("courses").
		Select(`COUNT(DISTINCT courses.id) as total_courses,
			COUNT(DISTINCT course_enrollments.student_id) as total_students,
			AVG(course_enrollments.score) as overall_average_score,
			COUNT(CASE WHEN course_enrollments.status = 'completed' THEN 1 END) as total_completions`).
		Joins("LEFT JOIN course_enrollments ON course_enrollments.course_id = courses.id").
		Where("courses.teacher_id = ? AND courses.deleted_at IS NULL", teacherID).
		Scan(&stats).Error
	return stats, err
}

// GetMyCourses lists the calling teacher's courses with their rollups
func GetMyCourses(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type CourseWithStats struct {
		CourseStats
		Description string `json:"description"`
	}

	var courses []CourseWithStats
	err := database.Database.Db.Table("courses").
		Select(`courses.id as course_id,
			courses.title,
			courses.description,
			COUNT(course_enrollments.id) as total_students,
			COUNT(CASE WHEN course_enrollments.status = 'completed' THEN 1 END) as completed_students,
			AVG(course_enrollments.score) as average_score`).
		Joins("LEFT JOIN course_enrollments ON course_enrollments.course_id = courses.id").
		Where("courses.teacher_id = ? AND courses.deleted_at IS NULL", teacherID).
		Group("courses.id, courses.title, courses.description, courses.created_at").
		Order("courses.created_at DESC").
		Scan(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetTeacherDashboard returns course count, distinct student count and
// per-course rollups for the calling teacher
func GetTeacherDashboard(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	overall, err := overallStatsForTeacher(db, teacherID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard data!", nil)
	}

	courseStats, err := courseStatsForTeacher(db, teacherID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard data!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard data fetched successfully!", fiber.Map{
		"course_count":  overall.TotalCourses,
		"student_count": overall.TotalStudents,
		"course_stats":  courseStats,
	})
}

// GetTeacherAnalytics returns the full analytics view: per-course rollups
// with score bands plus the overall rollup
func GetTeacherAnalytics(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	courseStats, err := courseStatsForTeacher(db, teacherID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analytics!", nil)
	}

	overall, err := overallStatsForTeacher(db, teacherID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analytics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"course_stats":  courseStats,
		"overall_stats": overall,
	})
}
