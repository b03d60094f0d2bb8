package courseRoutes

import (
	controllers "campushire/controllers/course"
	"campushire/middleware"
	validators "campushire/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Content completion
	courseGroup.Post("/:course_id/content/:content_id/complete", middleware.JWTMiddleware, validators.MarkContentComplete(), controllers.MarkContentComplete)

	// Quiz submission and per-quiz progress
	courseGroup.Post("/:course_id/quiz/:quiz_id/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)
	courseGroup.Get("/:course_id/quiz/:quiz_id/progress", middleware.JWTMiddleware, validators.GetQuizProgress(), controllers.GetQuizProgress)

	// Course progress
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
