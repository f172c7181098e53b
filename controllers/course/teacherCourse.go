package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"komodohub/config"
	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	"komodohub/utils"
)

// CreateCourse creates a course owned by the calling teacher
func CreateCourse(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})

	course := models.Course{
		TeacherID:   teacherID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// DeleteCourse deletes a course owned by the calling teacher. Referential
// integrity is the application's job here: contents and enrollments go
// first, inside one transaction, then the course row.
func DeleteCourse(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ?", courseID, teacherID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or access denied!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Where("course_id = ?", course.ID).Delete(&models.CourseContent{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetCourseStudents lists students enrolled in one of the teacher's courses
func GetCourseStudents(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ?", courseID, teacherID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or access denied!", nil)
	}

	type CourseStudent struct {
		StudentID      uint      `json:"student_id"`
		FullName       string    `json:"full_name"`
		Username       string    `json:"username"`
		StudentCode    string    `json:"student_code"`
		Score          *float64  `json:"score"`
		Status         string    `json:"status"`
		EnrollmentDate time.Time `json:"enrollment_date"`
	}

	var students []CourseStudent
	err := database.Database.Db.Table("course_enrollments").
		Select(`users.id as student_id, users.full_name, users.username, users.student_code,
			course_enrollments.score, course_enrollments.status, course_enrollments.enrollment_date`).
		Joins("JOIN users ON users.id = course_enrollments.student_id").
		Where("course_enrollments.course_id = ?", course.ID).
		Order("users.full_name").
		Scan(&students).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course students fetched successfully!", fiber.Map{
		"course":   course,
		"students": students,
		"total":    len(students),
	})
}

// AddStudent creates a student account with the platform default password
// and enrolls it into every course the teacher owns. Enrollment is
// insert-if-absent per course.
func AddStudent(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedStudent").(*struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	})

	db := database.Database.Db

	if err := db.Where("username = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(config.AppConfig.DefaultStudentPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	student := models.User{
		Username: reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleStudent,
		FullName: reqData.FullName,
	}
	if err := db.Create(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create student!", nil)
	}

	var courses []models.Course
	if err := db.Where("teacher_id = ?", teacherID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	for _, course := range courses {
		enrollment := models.Enrollment{
			CourseID:       course.ID,
			StudentID:      student.ID,
			Status:         models.EnrollmentStatusEnrolled,
			EnrollmentDate: time.Now(),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment).Error; err != nil {
			log.Printf("Error enrolling student %d into course %d: %v", student.ID, course.ID, err)
		}
	}

	utils.LogSecurityEvent(db, &teacherID, "student_created",
		"Teacher created student "+student.Username, c.IP(), c.Get("User-Agent"))

	student.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student added and enrolled successfully!", student)
}

// RemoveStudent removes a student from every course the calling teacher
// owns. Removing a student with no matching enrollments is still success.
func RemoveStudent(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	studentID := c.Locals("studentID").(uint)
	db := database.Database.Db

	result := db.Where("student_id = ? AND course_id IN (?)", studentID,
		db.Model(&models.Course{}).Select("id").Where("teacher_id = ?", teacherID)).
		Delete(&models.Enrollment{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student removed from your courses!", fiber.Map{
		"removed_enrollments": result.RowsAffected,
	})
}

// GetMyStudents lists distinct students across the teacher's courses
func GetMyStudents(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type TeacherStudent struct {
		StudentID uint      `json:"student_id"`
		Username  string    `json:"username"`
		FullName  string    `json:"full_name"`
		CreatedAt time.Time `json:"created_at"`
	}

	var students []TeacherStudent
	err := database.Database.Db.Table("users").
		Select("DISTINCT users.id as student_id, users.username, users.full_name, users.created_at").
		Joins("JOIN course_enrollments ON course_enrollments.student_id = users.id").
		Joins("JOIN courses ON courses.id = course_enrollments.course_id AND courses.deleted_at IS NULL").
		Where("courses.teacher_id = ? AND users.role = ?", teacherID, models.RoleStudent).
		Order("users.created_at DESC").
		Scan(&students).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": students,
		"total":    len(students),
	})
}

// AddCourseContent appends a lesson to one of the teacher's courses
func AddCourseContent(c *fiber.Ctx) error {
	teacherID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ?", courseID, teacherID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or access denied!", nil)
	}

	reqData := c.Locals("validatedContent").(*struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		ContentType string `json:"content_type"`
		OrderIndex  int    `json:"order_index"`
	})

	content := models.CourseContent{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Content:     reqData.Content,
		ContentType: reqData.ContentType,
		OrderIndex:  reqData.OrderIndex,
	}
	if content.ContentType == "" {
		content.ContentType = "lesson"
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content added successfully!", content)
}

// GetCourseContents lists a course's contents in order. Teachers see their
// own courses; enrolled students see courses they are enrolled in.
func GetCourseContents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role := c.Locals("role").(string)

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	switch role {
	case models.RoleTeacher:
		if course.TeacherID != userID {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or access denied!", nil)
		}
	case models.RoleStudent:
		var enrollment models.Enrollment
		if err := db.Where("course_id = ? AND student_id = ?", course.ID, userID).First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		}
	}

	var contents []models.CourseContent
	if err := db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course contents fetched successfully!", fiber.Map{
		"course":   course,
		"contents": contents,
	})
}
