package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "komodohub/controllers/course"
	"komodohub/middleware"
	"komodohub/models"
	courseValidators "komodohub/validators/course"
)

func SetupTeacherRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher))

	teacherGroup.Get("/courses", courseControllers.GetMyCourses)
	teacherGroup.Post("/course", courseValidators.CreateCourse(), courseControllers.CreateCourse)
	teacherGroup.Delete("/course/:id", courseValidators.CourseID(), courseControllers.DeleteCourse)
	teacherGroup.Get("/course/:id/students", courseValidators.CourseID(), courseControllers.GetCourseStudents)
	teacherGroup.Post("/course/:id/contents", courseValidators.CourseID(), courseValidators.AddContent(), courseControllers.AddCourseContent)

	teacherGroup.Get("/students", courseControllers.GetMyStudents)
	teacherGroup.Post("/student", courseValidators.AddStudent(), courseControllers.AddStudent)
	teacherGroup.Delete("/student/:id", courseValidators.StudentID(), courseControllers.RemoveStudent)

	teacherGroup.Get("/dashboard", courseControllers.GetTeacherDashboard)
	teacherGroup.Get("/analytics", courseControllers.GetTeacherAnalytics)
}
