package communityRoutes

import (
	"github.com/gofiber/fiber/v2"

	communityControllers "komodohub/controllers/community"
	"komodohub/middleware"
	"komodohub/models"
	communityValidators "komodohub/validators/community"
)

func SetupCommunityRoutes(app *fiber.App) {
	communityGroup := app.Group("/community", middleware.JWTMiddleware, middleware.RequireRole(models.RoleCommunityOrg))

	communityGroup.Get("/dashboard", communityControllers.GetCommunityDashboard)

	communityGroup.Get("/articles", communityControllers.GetArticles)
	communityGroup.Post("/article", communityValidators.Article(), communityControllers.CreateArticle)
	communityGroup.Put("/article/:id", communityValidators.ArticleID(), communityValidators.Article(), communityControllers.UpdateArticle)
	communityGroup.Delete("/article/:id", communityValidators.ArticleID(), communityControllers.DeleteArticle)

	communityGroup.Get("/events", communityControllers.GetMyEvents)
	communityGroup.Post("/event", communityValidators.Event(), communityControllers.CreateEvent)
	communityGroup.Put("/event/:id", communityValidators.EventID(), communityValidators.Event(), communityControllers.UpdateEvent)
	communityGroup.Delete("/event/:id", communityValidators.EventID(), communityControllers.DeleteEvent)

	communityGroup.Get("/members", communityControllers.GetMembers)
	communityGroup.Post("/member", communityValidators.Member(), communityControllers.CreateMember)
	communityGroup.Put("/member/:id", communityValidators.MemberID(), communityValidators.Member(), communityControllers.UpdateMember)
	communityGroup.Delete("/member/:id", communityValidators.MemberID(), communityControllers.DeleteMember)

	communityGroup.Post("/group", communityValidators.Group(), communityControllers.CreateMemberGroup)
	communityGroup.Post("/member/:id/group/:group_id", communityValidators.MemberID(), communityValidators.GroupID(), communityControllers.AssignMemberToGroup)
	communityGroup.Delete("/member/:id/group/:group_id", communityValidators.MemberID(), communityValidators.GroupID(), communityControllers.RemoveMemberFromGroup)

	// Registration is open to any signed-in user, not just organizers
	app.Post("/event/:id/register", middleware.JWTMiddleware, communityValidators.EventID(), communityControllers.RegisterForEvent)
}
