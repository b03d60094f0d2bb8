package controllers

import (
	"campushire/config"
	"campushire/database"
	"campushire/middleware"
	courseModels "campushire/models/course"

	"github.com/gofiber/fiber/v2"
)

// MarkContentComplete records a content item completion for the caller
func MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	// Check content exists and is published
	var content courseModels.CourseContent
	if err := database.Database.Db.Table(config.AppConfig.Tables.ContentsTable).
		Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).
		First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if content.ContentType == "QUIZ" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz content completes through quiz submission!", nil)
	}

	_, _, tracker, _ := newLearningServices()

	percentage, err := tracker.MarkContentComplete(userID, uint(courseID), uint(contentID), content.ContentType)
	if err != nil {
		return respondLearningError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed!", fiber.Map{
		"progress_percentage": percentage,
	})
}

// GetUserProgress returns the caller's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	progressData := enrollment.ProgressData.Data()
	progressData.EnsureMaps()

	completedContentIDs := make([]uint, 0, len(progressData.CompletedContent))
	for id := range progressData.CompletedContent {
		completedContentIDs = append(completedContentIDs, id)
	}
	passedQuizIDs := make([]uint, 0, len(progressData.CompletedQuizzes))
	for id, q := range progressData.CompletedQuizzes {
		if q.Passed {
			passedQuizIDs = append(passedQuizIDs, id)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":            enrollment,
		"progress_percentage":   enrollment.ProgressPercentage,
		"completed_content_ids": completedContentIDs,
		"passed_quiz_ids":       passedQuizIDs,
	})
}
