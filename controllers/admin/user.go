package adminController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"komodohub/config"
	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	"komodohub/utils"
)

// GetUsers lists all users, newest first
func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Order("created_at DESC").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"total": len(users),
	})
}

// CreateUser creates a user with any role
func CreateUser(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)

	reqData := c.Locals("validatedUser").(*struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
		FullName string `json:"full_name"`
		OrgName  string `json:"org_name"`
	})

	db := database.Database.Db

	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user := models.User{
		Username: reqData.Username,
		Password: string(hashedPassword),
		Role:     reqData.Role,
		FullName: reqData.FullName,
		OrgName:  reqData.OrgName,
	}

	if err := db.Create(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	utils.LogSecurityEvent(db, &adminID, "admin_user_created",
		"Admin created "+user.Role+" "+user.Username, c.IP(), c.Get("User-Agent"))

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully!", user)
}

// UpdateUser updates a user's profile fields. Role stays what it was
// unless the admin explicitly sets a new valid one.
func UpdateUser(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	userID := c.Locals("targetUserID").(uint)

	reqData := c.Locals("validatedUser").(*struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		FullName string `json:"full_name"`
		OrgName  string `json:"org_name"`
	})

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := map[string]interface{}{
		"username":  reqData.Username,
		"full_name": reqData.FullName,
		"org_name":  reqData.OrgName,
	}
	if reqData.Role != "" {
		updates["role"] = reqData.Role
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	utils.LogSecurityEvent(db, &adminID, "admin_user_updated",
		"Admin updated user "+user.Username, c.IP(), c.Get("User-Agent"))

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// DeleteUser removes a user account
func DeleteUser(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	userID := c.Locals("targetUserID").(uint)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Delete(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	utils.LogSecurityEvent(db, &adminID, "admin_user_deleted",
		"Admin deleted user "+user.Username, c.IP(), c.Get("User-Agent"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}
