package jobRoutes

import (
	controllers "campushire/controllers/jobs"
	"campushire/middleware"
	validators "campushire/validators/jobs"

	"github.com/gofiber/fiber/v2"
)

// SetupJobRoutes sets up job posting and application routes
func SetupJobRoutes(app *fiber.App) {
	jobGroup := app.Group("/jobs")

	jobGroup.Get("/list", middleware.JWTMiddleware, validators.JobList(), controllers.GetAllJobs)
	jobGroup.Post("/:job_id/apply", middleware.JWTMiddleware, validators.ApplyJob(), controllers.ApplyToJob)

	recruiterGroup := app.Group("/recruiter/jobs",
		middleware.JWTMiddleware, middleware.RequireRole("RECRUITER", "ADMIN"))

	recruiterGroup.Post("/create", validators.CreateJob(), controllers.CreateJob)
	recruiterGroup.Get("/:job_id/applications", validators.ApplyJob(), controllers.GetJobApplications)
}
