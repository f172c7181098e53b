package authValidator

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"komodohub/middleware"
	"komodohub/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Signup validates the registration request. The model's password field is
// hidden from JSON, so the body is parsed into a request struct first and
// mapped onto the model for the controller.
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username      string `json:"username"`
			Password      string `json:"password"`
			Role          string `json:"role"`
			FullName      string `json:"full_name"`
			TeacherCode   string `json:"teacher_code"`
			Department    string `json:"department"`
			StudentCode   string `json:"student_code"`
			Grade         string `json:"grade"`
			OrgName       string `json:"org_name"`
			ContactPerson string `json:"contact_person"`
			Phone         string `json:"phone"`
			Address       string `json:"address"`
			Description   string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Username = strings.TrimSpace(reqData.Username)
		reqData.FullName = strings.TrimSpace(reqData.FullName)

		if reqData.Username == "" {
			errors["username"] = "Username is required!"
		} else if !emailRegex.MatchString(reqData.Username) {
			errors["username"] = "Username must be a valid email address!"
		}

		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		} else if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		if reqData.FullName == "" {
			errors["full_name"] = "Full name is required!"
		}

		if !models.ValidRole(reqData.Role) {
			errors["role"] = "Role must be one of teacher, student, community_org, platform_admin!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", &models.User{
			Username:      reqData.Username,
			Password:      reqData.Password,
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
		})
		return c.Next()
	}
}

// UpdateProfile validates the self-service profile update. Which fields
// apply is decided by the controller from the caller's role.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName      string `json:"full_name"`
			Department    string `json:"department"`
			Grade         string `json:"grade"`
			OrgName       string `json:"org_name"`
			ContactPerson string `json:"contact_person"`
			Phone         string `json:"phone"`
			Address       string `json:"address"`
			Description   string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.FullName = strings.TrimSpace(reqData.FullName)
		if reqData.FullName == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"full_name": "Full name is required!",
			})
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
