package authControllers

import (
	"errors"
	"log"

	"crm/config"
	"crm/database"
	"crm/middleware"
	"crm/models"
	"crm/verification"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		PhoneNumber  string `json:"phone_number"`
		IndustryType string `json:"industry_type"`
		Country      string `json:"country"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// The email doubles as the username, matching the registration flow
	// the frontend expects.
	newUser := models.User{
		Username:     reqData.Email,
		Email:        reqData.Email,
		Password:     string(hashedPassword),
		FirstName:    reqData.FirstName,
		LastName:     reqData.LastName,
		PhoneNumber:  reqData.PhoneNumber,
		IndustryType: reqData.IndustryType,
		Country:      reqData.Country,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Username, newUser.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"user":  newUser,
		"token": token,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Username string `json:"username"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	result := database.Database.Db.
		Where("username = ? OR email = ?", reqData.Username, reqData.Username).
		First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func Profile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User profile.", user)
}

func UserList(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var users []models.User
	if err := database.Database.Db.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list.", users)
}

func GenerateVerificationCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEmail").(*struct {
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Only registered emails get a code
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Email not registered!", nil)
	}

	store := verification.NewStore(db, config.AppConfig.SaltRound)
	record, err := store.Issue(reqData.Email)
	if err != nil {
		log.Printf("Error issuing verification code for %s: %v", reqData.Email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate verification code!", nil)
	}

	// The code is returned in the response; delivering it by email is a
	// separate concern handled outside this service.
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Verification code generated successfully.", fiber.Map{
		"code":             record.Code,
		"expiresInMinutes": models.VerificationCodeExpirationMinutes,
	})
}

func VerifyCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyCode").(*struct {
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	store := verification.NewStore(database.Database.Db, config.AppConfig.SaltRound)
	_, err := store.Consume(reqData.Code, reqData.NewPassword)
	switch {
	case err == nil:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Password has been reset successfully.", nil)
	case errors.Is(err, verification.ErrNotFound), errors.Is(err, verification.ErrExpired):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired verification code!", nil)
	case errors.Is(err, verification.ErrUserNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User account not found!", nil)
	case errors.Is(err, verification.ErrPasswordTooShort):
		return middleware.ValidationErrorResponse(c, map[string][]string{
			"new_password": {"Password must be at least 8 characters long."},
		})
	default:
		log.Printf("Error consuming verification code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Password reset failed!", nil)
	}
}
