package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"komodohub/models"
)

func enroll(t *testing.T, db *gorm.DB, courseID, studentID uint, score *float64, status string) {
	t.Helper()

	enrollment := models.Enrollment{
		CourseID:       courseID,
		StudentID:      studentID,
		Status:         status,
		Score:          score,
		EnrollmentDate: time.Now(),
	}
	if status == models.EnrollmentStatusCompleted {
		now := time.Now()
		enrollment.CompletedAt = &now
	}
	require.NoError(t, db.Create(&enrollment).Error)
}

func ptr(v float64) *float64 { return &v }

func TestTeacherAnalyticsAverageIgnoresUnscored(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	a, _ := createUser(t, db, models.RoleStudent, "a@test.edu")
	b, _ := createUser(t, db, models.RoleStudent, "b@test.edu")
	c, _ := createUser(t, db, models.RoleStudent, "c@test.edu")
	course := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")

	enroll(t, db, course.ID, a.ID, ptr(80), models.EnrollmentStatusCompleted)
	enroll(t, db, course.ID, b.ID, ptr(90), models.EnrollmentStatusCompleted)
	enroll(t, db, course.ID, c.ID, nil, models.EnrollmentStatusEnrolled)

	resp, body := doRequest(t, app, "GET", "/teacher/analytics", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	stats := data["course_stats"].([]interface{})
	require.Len(t, stats, 1)

	row := stats[0].(map[string]interface{})
	assert.Equal(t, float64(3), row["total_students"])
	assert.Equal(t, float64(2), row["completed_students"])
	assert.Equal(t, float64(85), row["average_score"])
}

// A score of exactly 90 is excellent, not good; exactly 60 is good, not failing.
func TestTeacherAnalyticsScoreBandBoundaries(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	a, _ := createUser(t, db, models.RoleStudent, "a@test.edu")
	b, _ := createUser(t, db, models.RoleStudent, "b@test.edu")
	c, _ := createUser(t, db, models.RoleStudent, "c@test.edu")
	d, _ := createUser(t, db, models.RoleStudent, "d@test.edu")
	course := createCourse(t, db, teacher.ID, "Habitat Conservation")

	enroll(t, db, course.ID, a.ID, ptr(90), models.EnrollmentStatusCompleted)
	enroll(t, db, course.ID, b.ID, ptr(89.99), models.EnrollmentStatusCompleted)
	enroll(t, db, course.ID, c.ID, ptr(60), models.EnrollmentStatusCompleted)
	enroll(t, db, course.ID, d.ID, ptr(59.99), models.EnrollmentStatusCompleted)

	resp, body := doRequest(t, app, "GET", "/teacher/analytics", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	stats := data["course_stats"].([]interface{})
	require.Len(t, stats, 1)

	row := stats[0].(map[string]interface{})
	assert.Equal(t, float64(1), row["excellent_students"])
	assert.Equal(t, float64(2), row["good_students"])
	assert.Equal(t, float64(1), row["failing_students"])
}

func TestTeacherAnalyticsEmptyCourse(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	createCourse(t, db, teacher.ID, "Field Methods")

	resp, body := doRequest(t, app, "GET", "/teacher/analytics", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	stats := data["course_stats"].([]interface{})
	require.Len(t, stats, 1)

	row := stats[0].(map[string]interface{})
	assert.Equal(t, float64(0), row["total_students"])
	assert.Nil(t, row["average_score"])
}

func TestTeacherAnalyticsDistinctStudents(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	a, _ := createUser(t, db, models.RoleStudent, "a@test.edu")
	b, _ := createUser(t, db, models.RoleStudent, "b@test.edu")
	first := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")
	second := createCourse(t, db, teacher.ID, "Habitat Conservation")

	// Student a appears in both courses but counts once
	enroll(t, db, first.ID, a.ID, ptr(70), models.EnrollmentStatusCompleted)
	enroll(t, db, second.ID, a.ID, ptr(80), models.EnrollmentStatusCompleted)
	enroll(t, db, second.ID, b.ID, nil, models.EnrollmentStatusEnrolled)

	resp, body := doRequest(t, app, "GET", "/teacher/analytics", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	overall := data["overall_stats"].(map[string]interface{})
	assert.Equal(t, float64(2), overall["total_courses"])
	assert.Equal(t, float64(2), overall["total_students"])
	assert.Equal(t, float64(75), overall["overall_average_score"])
	assert.Equal(t, float64(2), overall["total_completions"])
}

func TestTeacherDashboardScopedToOwner(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	teacher, teacherToken := createUser(t, db, models.RoleTeacher, "teacher@test.edu")
	other, _ := createUser(t, db, models.RoleTeacher, "other@test.edu")
	a, _ := createUser(t, db, models.RoleStudent, "a@test.edu")

	mine := createCourse(t, db, teacher.ID, "Komodo Dragon Biology")
	theirs := createCourse(t, db, other.ID, "Habitat Conservation")

	enroll(t, db, mine.ID, a.ID, ptr(88), models.EnrollmentStatusCompleted)
	enroll(t, db, theirs.ID, a.ID, ptr(42), models.EnrollmentStatusCompleted)

	resp, body := doRequest(t, app, "GET", "/teacher/dashboard", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["course_count"])
	assert.Equal(t, float64(1), data["student_count"])

	stats := data["course_stats"].([]interface{})
	require.Len(t, stats, 1)
	assert.Equal(t, "Komodo Dragon Biology", stats[0].(map[string]interface{})["title"])
}
