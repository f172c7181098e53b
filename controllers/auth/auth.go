package authController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"komodohub/config"
	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	"komodohub/utils"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username:      reqData.Username,
		Password:      string(hashedPassword),
		Role:          reqData.Role,
		FullName:      reqData.FullName,
		TeacherCode:   reqData.TeacherCode,
		Department:    reqData.Department,
		StudentCode:   reqData.StudentCode,
		Grade:         reqData.Grade,
		OrgName:       reqData.OrgName,
		ContactPerson: reqData.ContactPerson,
		Phone:         reqData.Phone,
		Address:       reqData.Address,
		Description:   reqData.Description,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	utils.LogSecurityEvent(db, &newUser.ID, "user_signup",
		"New "+newUser.Role+" account registered", c.IP(), c.Get("User-Agent"))

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if reqData.Username == "" || reqData.Password == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Username and password are required!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("Error updating last login: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Username)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	utils.LogSecurityEvent(db, &user.ID, "user_login",
		user.Role+" logged in", c.IP(), c.Get("User-Agent"))

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the calling user's account
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile updates the calling user's own profile. Only the fields
// belonging to the caller's role are touched; username and role never change
// here.
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	reqData := c.Locals("validatedProfile").(*struct {
		FullName      string `json:"full_name"`
		Department    string `json:"department"`
		Grade         string `json:"grade"`
		OrgName       string `json:"org_name"`
		ContactPerson string `json:"contact_person"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		Description   string `json:"description"`
	})

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	updates := map[string]interface{}{
		"full_name": reqData.FullName,
	}
	switch role {
	case models.RoleTeacher:
		updates["department"] = reqData.Department
	case models.RoleStudent:
		updates["grade"] = reqData.Grade
	case models.RoleCommunityOrg:
		updates["org_name"] = reqData.OrgName
		updates["contact_person"] = reqData.ContactPerson
		updates["phone"] = reqData.Phone
		updates["address"] = reqData.Address
		updates["description"] = reqData.Description
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	utils.LogSecurityEvent(db, &user.ID, "profile_update",
		user.Role+" updated their profile", c.IP(), c.Get("User-Agent"))

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if len(reqData.NewPassword) < 6 {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"new_password": "New password must be at least 6 characters long!",
		})
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	utils.LogSecurityEvent(db, &user.ID, "password_change",
		"Password changed", c.IP(), c.Get("User-Agent"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully!", nil)
}
