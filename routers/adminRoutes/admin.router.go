package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	adminControllers "komodohub/controllers/admin"
	"komodohub/middleware"
	"komodohub/models"
	adminValidators "komodohub/validators/admin"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RolePlatformAdmin))

	adminGroup.Get("/users", adminControllers.GetUsers)
	adminGroup.Post("/user", adminValidators.CreateUser(), adminControllers.CreateUser)
	adminGroup.Put("/user/:id", adminValidators.TargetUserID(), adminValidators.UpdateUser(), adminControllers.UpdateUser)
	adminGroup.Delete("/user/:id", adminValidators.TargetUserID(), adminControllers.DeleteUser)

	adminGroup.Get("/articles", adminControllers.GetArticles)
	adminGroup.Put("/article/:id", adminValidators.ArticleID(), adminValidators.Article(), adminControllers.UpdateArticle)
	adminGroup.Delete("/article/:id", adminValidators.ArticleID(), adminControllers.DeleteArticle)

	adminGroup.Get("/analytics", adminControllers.GetGlobalAnalytics)
	adminGroup.Get("/enrollments", adminControllers.GetEnrollmentOverview)

	adminGroup.Get("/settings", adminControllers.GetSystemSettings)
	adminGroup.Put("/settings", adminControllers.UpdateSystemSettings)

	adminGroup.Get("/security/logs", adminControllers.GetSecurityLogs)
}
