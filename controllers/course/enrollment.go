package controllers

import (
	"campushire/config"
	"campushire/database"
	"campushire/middleware"
	"campushire/models"
	courseModels "campushire/models/course"
	"campushire/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Check if course exists and is active
	var course courseModels.Course
	if err := database.Database.Db.Table(config.AppConfig.Tables.CourseTable).
		Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "ACTIVE").
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	// Progress maps are initialized here, never lazily on legacy paths
	enrollment := courseModels.Enrollment{
		UserID:       userID,
		CourseID:     uint(courseID),
		Status:       "ENROLLED",
		ProgressData: datatypes.NewJSONType(courseModels.NewProgressData()),
		EnrolledAt:   time.Now(),
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetUserCertificates lists the caller's issued certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}
