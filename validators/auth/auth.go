package authValidators

import (
	"regexp"
	"strings"

	"crm/middleware"
	"crm/verification"

	"github.com/gofiber/fiber/v2"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Helper to validate email format
func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email        string `json:"email"`
			Password     string `json:"password"`
			FirstName    string `json:"first_name"`
			LastName     string `json:"last_name"`
			PhoneNumber  string `json:"phone_number"`
			IndustryType string `json:"industry_type"`
			Country      string `json:"country"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := map[string][]string{}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = append(errors["email"], "Please enter a valid email address.")
		}
		if len(strings.TrimSpace(reqData.Password)) < verification.MinPasswordLength {
			errors["password"] = append(errors["password"], "Password must be at least 8 characters long.")
		}
		if strings.TrimSpace(reqData.FirstName) == "" {
			errors["first_name"] = append(errors["first_name"], "This field is required.")
		}
		if strings.TrimSpace(reqData.LastName) == "" {
			errors["last_name"] = append(errors["last_name"], "This field is required.")
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := map[string][]string{}

		if strings.TrimSpace(reqData.Username) == "" {
			errors["username"] = append(errors["username"], "This field is required.")
		}
		if reqData.Password == "" {
			errors["password"] = append(errors["password"], "This field is required.")
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// GenerateVerificationCode validator middleware
func GenerateVerificationCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.TrimSpace(reqData.Email)

		errors := map[string][]string{}

		if reqData.Email == "" {
			errors["email"] = append(errors["email"], "Email is required.")
		} else if !isValidEmail(reqData.Email) {
			errors["email"] = append(errors["email"], "Please enter a valid email address.")
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEmail", reqData)
		return c.Next()
	}
}

// VerifyCode validator middleware. The password length check runs here,
// before any store lookup happens.
func VerifyCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code        string `json:"code"`
			NewPassword string `json:"new_password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.TrimSpace(reqData.Code)
		reqData.NewPassword = strings.TrimSpace(reqData.NewPassword)

		errors := map[string][]string{}

		if reqData.Code == "" {
			errors["code"] = append(errors["code"], "Code is required.")
		}
		if reqData.NewPassword == "" {
			errors["new_password"] = append(errors["new_password"], "New password is required.")
		} else if len(reqData.NewPassword) < verification.MinPasswordLength {
			errors["new_password"] = append(errors["new_password"], "Password must be at least 8 characters long.")
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerifyCode", reqData)
		return c.Next()
	}
}
