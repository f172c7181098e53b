package communityController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	communityValidator "komodohub/validators/community"
)

// GetMembers lists the org's members with their group names and the
// active/inactive/admin tallies the dashboard shows
func GetMembers(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var members []models.Member
	if err := db.Where("org_id = ?", orgID).Order("created_at DESC").Find(&members).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	var groups []models.MemberGroup
	if err := db.Where("org_id = ?", orgID).Order("name").Find(&groups).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch groups!", nil)
	}

	// Group membership per member
	type memberGroups struct {
		MemberID uint
		GroupID  uint
	}
	var relations []memberGroups
	db.Table("member_group_relations").
		Select("member_group_relations.member_id, member_group_relations.group_id").
		Joins("JOIN members ON members.id = member_group_relations.member_id").
		Where("members.org_id = ? AND members.deleted_at IS NULL", orgID).
		Scan(&relations)

	groupsByMember := make(map[uint][]uint)
	for _, r := range relations {
		groupsByMember[r.MemberID] = append(groupsByMember[r.MemberID], r.GroupID)
	}

	type MemberWithGroups struct {
		models.Member
		GroupIDs []uint `json:"group_ids"`
	}
	result := make([]MemberWithGroups, len(members))
	var activeCount, inactiveCount, adminCount int
	for i, m := range members {
		result[i] = MemberWithGroups{Member: m, GroupIDs: groupsByMember[m.ID]}
		switch m.Status {
		case "active":
			activeCount++
		case "inactive":
			inactiveCount++
		}
		if m.Role == "admin" {
			adminCount++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched successfully!", fiber.Map{
		"members":          result,
		"groups":           groups,
		"active_members":   activeCount,
		"inactive_members": inactiveCount,
		"admin_members":    adminCount,
	})
}

func CreateMember(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedMember").(*communityValidator.MemberRequest)

	member := models.Member{
		OrgID:    orgID,
		Name:     reqData.Name,
		Email:    reqData.Email,
		Phone:    reqData.Phone,
		Role:     reqData.Role,
		JoinDate: reqData.JoinDate,
		Status:   reqData.Status,
		Notes:    reqData.Notes,
	}
	if member.Role == "" {
		member.Role = "member"
	}
	if member.Status == "" {
		member.Status = "active"
	}

	if err := database.Database.Db.Create(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member added successfully!", member)
}

func UpdateMember(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	memberID := c.Locals("memberID").(uint)
	reqData := c.Locals("validatedMember").(*communityValidator.MemberRequest)

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND org_id = ?", memberID, orgID).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found or access denied!", nil)
	}

	updates := map[string]interface{}{
		"name":      reqData.Name,
		"email":     reqData.Email,
		"phone":     reqData.Phone,
		"join_date": reqData.JoinDate,
		"notes":     reqData.Notes,
	}
	if reqData.Role != "" {
		updates["role"] = reqData.Role
	}
	if reqData.Status != "" {
		updates["status"] = reqData.Status
	}
	if err := db.Model(&member).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member updated successfully!", member)
}

// DeleteMember removes an org-owned member and its group relations
func DeleteMember(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	memberID := c.Locals("memberID").(uint)
	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND org_id = ?", memberID, orgID).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found or access denied!", nil)
	}

	tx := db.Begin()
	if err := tx.Where("member_id = ?", member.ID).Delete(&models.MemberGroupRelation{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete member!", nil)
	}
	if err := tx.Delete(&member).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete member!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member deleted successfully!", nil)
}

func CreateMemberGroup(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedGroup").(*struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	})

	group := models.MemberGroup{
		OrgID:       orgID,
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&group).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Group created successfully!", group)
}

// AssignMemberToGroup adds a member to a group. The composite primary key
// on the relation makes a repeated assignment a no-op reported as success.
func AssignMemberToGroup(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	memberID := c.Locals("memberID").(uint)
	groupID := c.Locals("groupID").(uint)

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND org_id = ?", memberID, orgID).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found or access denied!", nil)
	}

	var group models.MemberGroup
	if err := db.Where("id = ? AND org_id = ?", groupID, orgID).First(&group).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Group not found or access denied!", nil)
	}

	relation := models.MemberGroupRelation{
		MemberID: member.ID,
		GroupID:  group.ID,
	}
	if err := db.Create(&relation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Member is already in this group.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign member to group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member assigned to group successfully!", relation)
}

// RemoveMemberFromGroup deletes one relation row, scoped to the caller's org
func RemoveMemberFromGroup(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	memberID := c.Locals("memberID").(uint)
	groupID := c.Locals("groupID").(uint)

	db := database.Database.Db

	result := db.Where("member_id = ? AND group_id = ? AND member_id IN (?)",
		memberID, groupID,
		db.Model(&models.Member{}).Select("id").Where("org_id = ?", orgID)).
		Delete(&models.MemberGroupRelation{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove member from group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member removed from group!", fiber.Map{
		"removed": result.RowsAffected,
	})
}

// GetCommunityDashboard returns the org's headline counts: all published
// articles, own events, own members
func GetCommunityDashboard(c *fiber.Ctx) error {
	orgID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var articleCount, eventCount, memberCount int64
	db.Model(&models.Article{}).Count(&articleCount)
	db.Model(&models.Event{}).Where("organizer_id = ?", orgID).Count(&eventCount)
	db.Model(&models.Member{}).Where("org_id = ?", orgID).Count(&memberCount)

	var org models.User
	if err := db.First(&org, orgID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard data fetched successfully!", fiber.Map{
		"article_count":  articleCount,
		"event_count":    eventCount,
		"member_count":   memberCount,
		"org_name":       org.OrgName,
		"contact_person": org.ContactPerson,
	})
}
