package controllers

import (
	"campushire/config"
	"campushire/database"
	"campushire/middleware"
	"campushire/models"
	courseModels "campushire/models/course"
	"campushire/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new course for the calling institute
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Author       string `json:"author"`
		Duration     int64  `json:"duration"`
		ThumbnailURL string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		InstituteID:  userID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		Duration:     reqData.Duration,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       "DRAFT",
		IsPublished:  false,
	}

	if err := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// PublishCourse marks an institute's course as active and visible to students
func PublishCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).
		Where("id = ? AND institute_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Status = "ACTIVE"
	course.IsPublished = true

	if err := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).
		Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// CreateModule adds a module to an institute's course
func CreateModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).
		Where("id = ? AND institute_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module := courseModels.Module{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Table(config.AppConfig.Tables.ModulesTable).Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// CreateContent adds a content item to a module, with optional thumbnail upload
func CreateContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).
		Where("id = ? AND institute_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Table(config.AppConfig.Tables.ModulesTable).
		Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedContent").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ContentType string `json:"content_type"`
		TextContent string `json:"text_content"`
		VideoURL    string `json:"video_url"`
		DocumentURL string `json:"document_url"`
		OrderIndex  int    `json:"order_index"`
		IsMandatory *bool  `json:"is_mandatory"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	documentURL := reqData.DocumentURL
	if file, err := c.FormFile("document"); err == nil {
		url, err := utils.UploadFile(file, "documents")
		if err != nil {
			log.Printf("Error uploading document: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload document!", nil)
		}
		documentURL = url
	}

	isMandatory := true
	if reqData.IsMandatory != nil {
		isMandatory = *reqData.IsMandatory
	}

	content := courseModels.CourseContent{
		CourseID:    uint(courseID),
		ModuleID:    uint(moduleID),
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		DocumentURL: documentURL,
		OrderIndex:  reqData.OrderIndex,
		IsMandatory: isMandatory,
		IsPublished: true,
	}

	if err := database.Database.Db.Table(config.AppConfig.Tables.ContentsTable).Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// GetCourseEnrollments lists enrollments of one of the institute's courses
func GetCourseEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).
		Where("id = ? AND institute_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Resolve student names for the listing
	type enrollmentRow struct {
		Enrollment courseModels.Enrollment `json:"enrollment"`
		Student    string                  `json:"student"`
	}
	rows := make([]enrollmentRow, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var student models.User
		database.Database.Db.Select("name").Where("id = ?", enrollment.UserID).First(&student)
		rows = append(rows, enrollmentRow{Enrollment: enrollment, Student: student.Name})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", rows)
}
