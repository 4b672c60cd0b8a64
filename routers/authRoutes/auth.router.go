package authRoutes

import (
	authControllers "crm/controllers/auth"
	"crm/middleware"
	authValidators "crm/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.Profile)
	authGroup.Get("/users", middleware.JWTMiddleware, authControllers.UserList)
	authGroup.Post("/generate-verification-code", authValidators.GenerateVerificationCode(), authControllers.GenerateVerificationCode)
	authGroup.Post("/verify-code", authValidators.VerifyCode(), authControllers.VerifyCode)
}
