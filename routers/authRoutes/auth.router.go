package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "komodohub/controllers/auth"
	"komodohub/middleware"
	authValidators "komodohub/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authControllers.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.GetProfile)
	authGroup.Put("/profile", middleware.JWTMiddleware, authValidators.UpdateProfile(), authControllers.UpdateProfile)
	authGroup.Put("/change/password", middleware.JWTMiddleware, authControllers.ChangePassword)
}
