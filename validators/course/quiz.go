package courseValidator

import (
	"campushire/middleware"
	"campushire/services/learning"

	"github.com/gofiber/fiber/v2"
)

// CreateQuiz parses the authoring payload; field-level checks happen in the
// quiz engine so the rules live in one place.
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "course_id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}
		if _, ok := parseIDParam(c, "module_id", "moduleID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required in the URL!", nil)
		}

		reqData := new(learning.QuizInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "course_id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}
		if _, ok := parseIDParam(c, "quiz_id", "quizID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz ID is required in the URL!", nil)
		}

		reqData := new(struct {
			Answers map[uint]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedAnswers", reqData.Answers)
		return c.Next()
	}
}

func GetQuizProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := parseIDParam(c, "course_id", "courseID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}
		if _, ok := parseIDParam(c, "quiz_id", "quizID"); !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz ID is required in the URL!", nil)
		}
		return c.Next()
	}
}
