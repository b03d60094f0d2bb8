package courseRoutes

import (
	controllers "campushire/controllers/course"
	"campushire/middleware"
	validators "campushire/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstituteCourseRoutes sets up course management routes for institutes
func SetupInstituteCourseRoutes(app *fiber.App) {
	instituteGroup := app.Group("/institute/course",
		middleware.JWTMiddleware, middleware.RequireRole("INSTITUTE", "ADMIN"))

	// Course management
	instituteGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	instituteGroup.Post("/:id/publish", validators.EnrollCourse(), controllers.PublishCourse)
	instituteGroup.Get("/:id/enrollments", validators.EnrollCourse(), controllers.GetCourseEnrollments)

	// Module and content management
	instituteGroup.Post("/:id/module", validators.CreateModule(), controllers.CreateModule)
	instituteGroup.Post("/:course_id/module/:module_id/content", validators.CreateContent(), controllers.CreateContent)

	// Quiz authoring
	instituteGroup.Post("/:course_id/module/:module_id/quiz", validators.CreateQuiz(), controllers.CreateQuiz)
}
