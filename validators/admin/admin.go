package adminValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"komodohub/middleware"
	"komodohub/models"
)

// TargetUserID validates the :id route parameter and blocks an admin
// from pointing an operation at their own account
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		if adminID, ok := c.Locals("userId").(uint); ok && adminID == uint(id) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot modify your own account here!", nil)
		}

		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}

// ArticleID validates the :id route parameter for moderation routes
func ArticleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Article ID!", nil)
		}

		c.Locals("articleID", uint(id))
		return c.Next()
	}
}

// Article validates the moderation edit payload
func Article() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedArticle", reqData)
		return c.Next()
	}
}

// CreateUser validates the admin user-creation payload
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
			FullName string `json:"full_name"`
			OrgName  string `json:"org_name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Username = strings.TrimSpace(strings.ToLower(reqData.Username))

		if reqData.Username == "" {
			errors["username"] = "Username is required!"
		}
		if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}
		if !models.ValidRole(reqData.Role) {
			errors["role"] = "Invalid role!"
		}
		if strings.TrimSpace(reqData.FullName) == "" {
			errors["full_name"] = "Full name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// UpdateUser validates the admin user-update payload. Role is optional
// and only checked when present.
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			Role     string `json:"role"`
			FullName string `json:"full_name"`
			OrgName  string `json:"org_name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Username = strings.TrimSpace(strings.ToLower(reqData.Username))

		if reqData.Username == "" {
			errors["username"] = "Username is required!"
		}
		if reqData.Role != "" && !models.ValidRole(reqData.Role) {
			errors["role"] = "Invalid role!"
		}
		if strings.TrimSpace(reqData.FullName) == "" {
			errors["full_name"] = "Full name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}
