package authRoutes

import (
	authController "campushire/controllers/auth"
	"campushire/middleware"
	authValidator "campushire/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)

	userGroup := app.Group("/user")
	userGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	userGroup.Post("/resume", middleware.JWTMiddleware, authController.UploadResume)
}
