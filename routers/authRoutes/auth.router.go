package authRoutes

import (
	authController "cocina/controllers/auth"
	"cocina/middleware"
	authValidator "cocina/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication and profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authController.Login)

	userGroup := app.Group("/user")
	userGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, authValidator.UpdateProfile(), authController.UpdateProfile)
}
