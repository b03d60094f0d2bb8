package controllers

import (
	"campushire/database"
	"campushire/middleware"
	"campushire/models"
	jobModels "campushire/models/job"
	"campushire/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CreateJob creates a job posting for the calling recruiter
func CreateJob(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedJob").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		CompanyName string `json:"company_name"`
		Location    string `json:"location"`
		SalaryMin   int64  `json:"salary_min"`
		SalaryMax   int64  `json:"salary_max"`
		JobType     string `json:"job_type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	job := jobModels.JobPosting{
		RecruiterID: userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		CompanyName: reqData.CompanyName,
		Location:    reqData.Location,
		SalaryMin:   reqData.SalaryMin,
		SalaryMax:   reqData.SalaryMax,
		JobType:     reqData.JobType,
		Status:      "OPEN",
	}

	if err := database.Database.Db.Create(&job).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create job posting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Job posted successfully!", job)
}

// GetAllJobs lists open job postings with pagination
func GetAllJobs(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedJobList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&jobModels.JobPosting{}).
		Where("is_deleted = ? AND status = ?", false, "OPEN")

	var total int64
	db.Count(&total)

	var jobs []jobModels.JobPosting
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&jobs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch jobs!", nil)
	}

	response := map[string]interface{}{
		"jobs": jobs,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Jobs fetched successfully!", response)
}

// ApplyToJob submits an application, uploading a resume if one is attached
func ApplyToJob(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	jobID := c.Locals("jobID").(int)

	var job jobModels.JobPosting
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND status = ?", jobID, false, "OPEN").
		First(&job).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Job not found or closed!", nil)
	}

	// One application per user per job
	var existing jobModels.JobApplication
	if err := database.Database.Db.
		Where("job_id = ? AND user_id = ? AND is_deleted = ?", jobID, userID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already applied to this job!", nil)
	}

	resumeURL := user.ResumeURL
	if file, err := c.FormFile("resume"); err == nil {
		url, err := utils.UploadFile(file, "resumes")
		if err != nil {
			log.Printf("Error uploading resume: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload resume!", nil)
		}
		resumeURL = url
	}
	if resumeURL == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Resume is required to apply!", nil)
	}

	application := jobModels.JobApplication{
		JobID:       uint(jobID),
		UserID:      userID,
		ResumeURL:   resumeURL,
		CoverLetter: c.FormValue("cover_letter"),
		Status:      "APPLIED",
	}

	if err := database.Database.Db.Create(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	var recruiter models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", job.RecruiterID, false).First(&recruiter).Error; err == nil {
		utils.SendApplicationReceivedEmail(recruiter.Email, recruiter.Name, user.Name, job.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted successfully!", application)
}

// GetJobApplications lists applications for one of the recruiter's postings
func GetJobApplications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	jobID := c.Locals("jobID").(int)

	var job jobModels.JobPosting
	if err := database.Database.Db.
		Where("id = ? AND recruiter_id = ? AND is_deleted = ?", jobID, userID, false).
		First(&job).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Job not found!", nil)
	}

	var applications []jobModels.JobApplication
	if err := database.Database.Db.
		Where("job_id = ? AND is_deleted = ?", jobID, false).
		Order("created_at desc").
		Find(&applications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully!", applications)
}
