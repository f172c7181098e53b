package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"komodohub/config"
	"komodohub/models"
)

func TestCreateCourse(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")

	resp, _ := doRequest(t, app, "POST", "/teacher/course", teacherToken, map[string]string{
		"title":       "Komodo Dragon Biology",
		"description": "An introduction",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var course models.Course
	require.NoError(t, db.Where("teacher_id = ?", teacher.ID).First(&course).Error)
	assert.Equal(t, "Komodo Dragon Biology", course.Title)
}

func TestCreateCourseValidation(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	_, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")

	resp, _ := doRequest(t, app, "POST", "/teacher/course", teacherToken, map[string]string{
		"title": "ab",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeleteCourseCascades(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	_, studentToken := createUser(t, db, models.RoleStudent, "student@test.edu")
	course := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")

	require.NoError(t, db.Create(&models.CourseContent{CourseID: course.ID, Title: "Lesson 1", Content: "Intro"}).Error)
	doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)

	resp, _ := doRequest(t, app, "DELETE", fmt.Sprintf("/teacher/course/%d", course.ID), teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var enrollments, contents int64
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)
	db.Model(&models.CourseContent{}).Where("course_id = ?", course.ID).Count(&contents)
	assert.Equal(t, int64(0), enrollments)
	assert.Equal(t, int64(0), contents)
}

func TestDeleteCourseNotOwned(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	owner, _ := createUser(t, db, models.RoleTeacher, "owner@test.edu")
	_, otherToken := createUser(t, db, models.RoleTeacher, "other@test.edu")
	course := createCourse(t, db, owner.ID, "Komodo Dragon Biology")

	resp, _ := doRequest(t, app, "DELETE", fmt.Sprintf("/teacher/course/%d", course.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddStudentEnrollsEverywhere(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	first := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")
	second := createCourse(t, db, teacher.ID, "Habitat Conservation")

	resp, _ := doRequest(t, app, "POST", "/teacher/student", teacherToken, map[string]string{
		"full_name": "New Student",
		"email":     "new.student@test.edu",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var student models.User
	require.NoError(t, db.Where("username = ?", "new.student@test.edu").First(&student).Error)
	assert.Equal(t, models.RoleStudent, student.Role)

	// Account usable with the platform default password
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(student.Password), []byte(config.AppConfig.DefaultStudentPassword)))

	var count int64
	db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id IN ?", student.ID, []uint{first.ID, second.ID}).
		Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAddStudentDuplicateEmail(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	_, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	createUser(t, db, models.RoleStudent, "taken@test.edu")

	resp, _ := doRequest(t, app, "POST", "/teacher/student", teacherToken, map[string]string{
		"full_name": "New Student",
		"email":     "taken@test.edu",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRemoveStudentScopedToOwnCourses(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	other, _ := createUser(t, db, models.RoleTeacher, "other@test.edu")
	student, studentToken := createUser(t, db, models.RoleStudent, "student@test.edu")

	mine := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")
	theirs := createCourse(t, db, other.ID, "Habitat Conservation")

	doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", mine.ID), studentToken, nil)
	doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", theirs.ID), studentToken, nil)

	resp, body := doRequest(t, app, "DELETE", fmt.Sprintf("/teacher/student/%d", student.ID), teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["removed_enrollments"])

	// The other teacher's enrollment is untouched
	var remaining models.Enrollment
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&remaining).Error)
	assert.Equal(t, theirs.ID, remaining.CourseID)
}

func TestRemoveStudentThenReEnroll(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	student, studentToken := createUser(t, db, models.RoleStudent, "student@test.edu")
	course := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")

	doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	doRequest(t, app, "DELETE", fmt.Sprintf("/teacher/student/%d", student.ID), teacherToken, nil)

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRemoveStudentNoEnrollments(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	_, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	student, _ := createUser(t, db, models.RoleStudent, "student@test.edu")

	resp, body := doRequest(t, app, "DELETE", fmt.Sprintf("/teacher/student/%d", student.ID), teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["removed_enrollments"])
}

func TestGetCourseContentsRequiresEnrollment(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, _ := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	_, studentToken := createUser(t, db, models.RoleStudent, "student@test.edu")
	course := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")

	path := fmt.Sprintf("/course/%d/contents", course.ID)

	resp, _ := doRequest(t, app, "GET", path, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)

	resp, _ = doRequest(t, app, "GET", path, studentToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAddCourseContentDefaultsToLesson(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	course := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")

	resp, _ := doRequest(t, app, "POST", fmt.Sprintf("/teacher/course/%d/contents", course.ID), teacherToken, map[string]interface{}{
		"title":   "Lesson 1",
		"content": "Komodo dragons are the largest living lizards.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var content models.CourseContent
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&content).Error)
	assert.Equal(t, "lesson", content.ContentType)
}
