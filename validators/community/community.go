package communityValidator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"komodohub/middleware"
)

var validate = validator.New()

// MemberRequest is the create/update member payload. Name is the only
// required field; everything else is a free-form label.
type MemberRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Role     string `json:"role" validate:"omitempty,max=50"`
	JoinDate string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	Status   string `json:"status" validate:"omitempty,max=20"`
	Notes    string `json:"notes"`
}

// EventRequest is the create/update event payload
type EventRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Description     string `json:"description" validate:"required"`
	EventDate       string `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime       string `json:"event_time" validate:"omitempty,datetime=15:04"`
	Location        string `json:"location"`
	MaxParticipants *int   `json:"max_participants" validate:"omitempty,gt=0"`
	Status          string `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[strings.ToLower(fe.Field())] = "Invalid value (" + fe.Tag() + ")!"
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

func idParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}
		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func ArticleID() fiber.Handler {
	return idParam("id", "articleID", "Article ID")
}

func EventID() fiber.Handler {
	return idParam("id", "eventID", "Event ID")
}

func MemberID() fiber.Handler {
	return idParam("id", "memberID", "Member ID")
}

// GroupID validates the :group_id route parameter
func GroupID() fiber.Handler {
	return idParam("group_id", "groupID", "Group ID")
}

// Article validates the article create/update payload
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

// Member validates the member payload against MemberRequest rules
func Member() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MemberRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedMember", reqData)
		return c.Next()
	}
}

// Event validates the event payload against EventRequest rules
func Event() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EventRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}

// Group validates the member-group create payload
func Group() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"name": "Group name is required!",
			})
		}

		c.Locals("validatedGroup", reqData)
		return c.Next()
	}
}
