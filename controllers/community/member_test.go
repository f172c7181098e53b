package communityController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"komodohub/config"
	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	communityRoutes "komodohub/routers/communityRoutes"
)

func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func newTestApp() *fiber.App {
	app := fiber.New()
	communityRoutes.SetupCommunityRoutes(app)
	return app
}

func createUser(t *testing.T, db *gorm.DB, role, username string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.DefaultStudentPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		FullName: "Test " + role,
		OrgName:  "Test Organization",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Username)
	require.NoError(t, err)

	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}

	return resp, parsed
}

func createMember(t *testing.T, db *gorm.DB, orgID uint, name string) models.Member {
	t.Helper()

	member := models.Member{OrgID: orgID, Name: name, Role: "member", Status: "active"}
	require.NoError(t, db.Create(&member).Error)
	return member
}

func createGroup(t *testing.T, db *gorm.DB, orgID uint, name string) models.MemberGroup {
	t.Helper()

	group := models.MemberGroup{OrgID: orgID, Name: name}
	require.NoError(t, db.Create(&group).Error)
	return group
}

func TestCreateMemberDefaults(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	org, orgToken := createUser(t, db, models.RoleCommunityOrg, "org@test.org")

	resp, _ := doRequest(t, app, "POST", "/community/member", orgToken, map[string]string{
		"name": "Jane Field",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var member models.Member
	require.NoError(t, db.Where("org_id = ?", org.ID).First(&member).Error)
	assert.Equal(t, "member", member.Role)
	assert.Equal(t, "active", member.Status)
}

func TestCreateMemberEmptyName(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	_, orgToken := createUser(t, db, models.RoleCommunityOrg, "org@test.org")

	resp, body := doRequest(t, app, "POST", "/community/member", orgToken, map[string]string{
		"name": "   ",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, body["status"].(bool))
}

func TestUpdateMemberOtherOrg(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	owner, _ := createUser(t, db, models.RoleCommunityOrg, "owner@test.org")
	_, otherToken := createUser(t, db, models.RoleCommunityOrg, "other@test.org")
	member := createMember(t, db, owner.ID, "Jane Field")

	resp, _ := doRequest(t, app, "PUT", fmt.Sprintf("/community/member/%d", member.ID), otherToken, map[string]string{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAssignMemberToGroupIdempotent(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	org, orgToken := createUser(t, db, models.RoleCommunityOrg, "org@test.org")
	member := createMember(t, db, org.ID, "Jane Field")
	group := createGroup(t, db, org.ID, "Volunteers")

	path := fmt.Sprintf("/community/member/%d/group/%d", member.ID, group.ID)

	resp, _ := doRequest(t, app, "POST", path, orgToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Assigning again is reported as success without a second row
	resp, body := doRequest(t, app, "POST", path, orgToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body["status"].(bool))

	var count int64
	db.Model(&models.MemberGroupRelation{}).
		Where("member_id = ? AND group_id = ?", member.ID, group.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAssignMemberToGroupCrossOrg(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	org, orgToken := createUser(t, db, models.RoleCommunityOrg, "org@test.org")
	other, _ := createUser(t, db, models.RoleCommunityOrg, "other@test.org")
	member := createMember(t, db, org.ID, "Jane Field")
	foreignGroup := createGroup(t, db, other.ID, "Their Volunteers")

	resp, _ := doRequest(t, app, "POST",
		fmt.Sprintf("/community/member/%d/group/%d", member.ID, foreignGroup.ID), orgToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoveMemberFromGroup(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	org, orgToken := createUser(t, db, models.RoleCommunityOrg, "org@test.org")
	member := createMember(t, db, org.ID, "Jane Field")
	group := createGroup(t, db, org.ID, "Volunteers")

	require.NoError(t, db.Create(&models.MemberGroupRelation{MemberID: member.ID, GroupID: group.ID}).Error)

	resp, body := doRequest(t, app, "DELETE",
		fmt.Sprintf("/community/member/%d/group/%d", member.ID, group.ID), orgToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["removed"])

	var count int64
	db.Model(&models.MemberGroupRelation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteMemberRemovesRelations(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	org, orgToken := createUser(t, db, models.RoleCommunityOrg, "org@test.org")
	member := createMember(t, db, org.ID, "Jane Field")
	group := createGroup(t, db, org.ID, "Volunteers")

	require.NoError(t, db.Create(&models.MemberGroupRelation{MemberID: member.ID, GroupID: group.ID}).Error)

	resp, _ := doRequest(t, app, "DELETE", fmt.Sprintf("/community/member/%d", member.ID), orgToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var relations int64
	db.Model(&models.MemberGroupRelation{}).Where("member_id = ?", member.ID).Count(&relations)
	assert.Equal(t, int64(0), relations)
}

func TestGetMembersTallies(t *testing.T) {
	db := setupTest(t)
	app := newTestApp()

	org, orgToken := createUser(t, db, models.RoleCommunityOrg, "org@test.org")

	createMember(t, db, org.ID, "Active One")
	inactive := models.Member{OrgID: org.ID, Name: "Gone Quiet", Role: "member", Status: "inactive"}
	require.NoError(t, db.Create(&inactive).Error)
	admin := models.Member{OrgID: org.ID, Name: "The Organizer", Role: "admin", Status: "active"}
	require.NoError(t, db.Create(&admin).Error)

	resp, body := doRequest(t, app, "GET", "/community/members", orgToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["active_members"])
	assert.Equal(t, float64(1), data["inactive_members"])
	assert.Equal(t, float64(1), data["admin_members"])
}
