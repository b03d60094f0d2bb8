package authValidator

import (
	"campushire/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var allowedRoles = map[string]bool{
	"STUDENT":   true,
	"INSTITUTE": true,
	"RECRUITER": true,
}

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Mobile   string `json:"mobile"`
			Password string `json:"password"`
			Role     string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		reqData.Role = strings.TrimSpace(strings.ToUpper(reqData.Role))

		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}

		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		} else if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "Email is not valid!"
		}

		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if reqData.Role == "" {
			reqData.Role = "STUDENT"
		} else if !allowedRoles[reqData.Role] {
			errors["role"] = "Role must be STUDENT, INSTITUTE or RECRUITER!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))

		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
