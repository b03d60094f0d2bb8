package jobValidator

import (
	"campushire/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var allowedJobTypes = map[string]bool{
	"FULL_TIME":  true,
	"PART_TIME":  true,
	"INTERNSHIP": true,
}

func CreateJob() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			CompanyName string `json:"company_name"`
			Location    string `json:"location"`
			SalaryMin   int64  `json:"salary_min"`
			SalaryMax   int64  `json:"salary_max"`
			JobType     string `json:"job_type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.JobType = strings.TrimSpace(strings.ToUpper(reqData.JobType))

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}
		if reqData.JobType == "" {
			reqData.JobType = "FULL_TIME"
		} else if !allowedJobTypes[reqData.JobType] {
			errors["job_type"] = "Job type must be FULL_TIME, PART_TIME or INTERNSHIP!"
		}
		if reqData.SalaryMin < 0 || reqData.SalaryMax < 0 || (reqData.SalaryMax > 0 && reqData.SalaryMin > reqData.SalaryMax) {
			errors["salary"] = "Salary range is not valid!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedJob", reqData)
		return c.Next()
	}
}

func ApplyJob() fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobID, err := strconv.Atoi(strings.TrimSpace(c.Params("job_id")))
		if err != nil || jobID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Job ID is required in the URL!", nil)
		}
		c.Locals("jobID", jobID)
		return c.Next()
	}
}

func JobList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		defaultPage := 1
		defaultLimit := 10
		if reqData.Page == nil || *reqData.Page < 1 {
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			reqData.Limit = &defaultLimit
		}

		c.Locals("validatedJobList", reqData)
		return c.Next()
	}
}
