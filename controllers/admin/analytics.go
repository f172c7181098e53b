package adminController

import (
	"github.com/gofiber/fiber/v2"

	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
)

// GetGlobalAnalytics computes the platform-wide rollups: user counts per
// role, active users, content counts and article length categories. All
// figures are recomputed from the tables on every call.
func GetGlobalAnalytics(c *fiber.Ctx) error {
	db := database.Database.Db

	var studentCount, teacherCount, organizerCount, activeUsers int64
	db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&studentCount)
	db.Model(&models.User{}).Where("role = ?", models.RoleTeacher).Count(&teacherCount)
	db.Model(&models.User{}).Where("role = ?", models.RoleCommunityOrg).Count(&organizerCount)
	db.Model(&models.User{}).Where("last_login IS NOT NULL").Count(&activeUsers)

	var articleCount, eventCount, courseCount, enrollmentCount int64
	db.Model(&models.Article{}).Count(&articleCount)
	db.Model(&models.Event{}).Count(&eventCount)
	db.Model(&models.Course{}).Count(&courseCount)
	db.Model(&models.Enrollment{}).Count(&enrollmentCount)

	type ArticleCategory struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	var articleCategories []ArticleCategory
	db.Table("articles").
		Select(`CASE
			WHEN LENGTH(content) < 100 THEN 'short'
			WHEN LENGTH(content) < 500 THEN 'medium'
			ELSE 'long'
		END as category,
		COUNT(*) as count`).
		Where("deleted_at IS NULL").
		Group("category").
		Scan(&articleCategories)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"user_stats": fiber.Map{
			"students":   studentCount,
			"teachers":   teacherCount,
			"organizers": organizerCount,
			"total":      studentCount + teacherCount + organizerCount,
			"active":     activeUsers,
		},
		"content_stats": fiber.Map{
			"articles":    articleCount,
			"events":      eventCount,
			"courses":     courseCount,
			"enrollments": enrollmentCount,
		},
		"article_categories": articleCategories,
	})
}

// GetEnrollmentOverview lists every enrollment with student and course
// names for the admin analytics tables
func GetEnrollmentOverview(c *fiber.Ctx) error {
	type EnrollmentRow struct {
		ID          uint     `json:"id"`
		StudentName string   `json:"student_name"`
		CourseTitle string   `json:"course_title"`
		Status      string   `json:"status"`
		Score       *float64 `json:"score"`
	}

	var rows []EnrollmentRow
	err := database.Database.Db.Table("course_enrollments").
		Select(`course_enrollments.id, users.full_name as student_name,
			courses.title as course_title, course_enrollments.status, course_enrollments.score`).
		Joins("JOIN users ON users.id = course_enrollments.student_id").
		Joins("JOIN courses ON courses.id = course_enrollments.course_id AND courses.deleted_at IS NULL").
		Order("course_enrollments.enrollment_date DESC").
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": rows,
		"total":       len(rows),
	})
}
