package courseValidator

import (
	"campushire/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam reads a positive integer route parameter into c.Locals
func parseIDParam(c *fiber.Ctx, param, local string) (int, bool) {
	raw := strings.TrimSpace(c.Params(param))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	c.Locals(local, id)
	return id, true
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Duration     int64  `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long if provided!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Set defaults if not provided
		defaultPage := 1
		defaultLimit := 10
		if reqData.Page == nil || *reqData.Page < 1 {
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			reqData.Limit = &defaultLimit
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}
		return c.Next()
	}
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

var allowedContentTypes = map[string]bool{
	"VIDEO":      true,
	"DOCUMENT":   true,
	"ASSIGNMENT": true,
	"QUIZ":       true,
}

func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "course_id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}
		if _, ok := parseIDParam(c, "module_id", "moduleID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required in the URL!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ContentType string `json:"content_type"`
			TextContent string `json:"text_content"`
			VideoURL    string `json:"video_url"`
			DocumentURL string `json:"document_url"`
			OrderIndex  int    `json:"order_index"`
			IsMandatory *bool  `json:"is_mandatory"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ContentType = strings.TrimSpace(strings.ToUpper(reqData.ContentType))

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if !allowedContentTypes[reqData.ContentType] {
			errors["content_type"] = "Content type must be VIDEO, DOCUMENT, ASSIGNMENT or QUIZ!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "course_id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}
		return c.Next()
	}
}

func MarkContentComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "course_id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}
		if _, ok := parseIDParam(c, "content_id", "contentID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required in the URL!", nil)
		}
		return c.Next()
	}
}
