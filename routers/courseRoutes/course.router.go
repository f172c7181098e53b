package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "komodohub/controllers/course"
	"komodohub/middleware"
	"komodohub/models"
	courseValidators "komodohub/validators/course"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// "/list" must register before the ":id" routes
	courseGroup.Get("/list", middleware.RequireRole(models.RoleStudent), courseControllers.GetAvailableCourses)
	courseGroup.Post("/:id/enroll", middleware.RequireRole(models.RoleStudent), courseValidators.CourseID(), courseControllers.EnrollInCourse)
	courseGroup.Post("/:id/study", middleware.RequireRole(models.RoleStudent), courseValidators.CourseID(), courseControllers.StudyCourse)
	courseGroup.Get("/:id/contents", courseValidators.CourseID(), courseControllers.GetCourseContents)

	studentGroup := app.Group("/student", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent))

	studentGroup.Get("/enrollments", courseControllers.GetMyEnrollments)
}
