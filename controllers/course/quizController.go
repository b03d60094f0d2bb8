package controllers

import (
	"campushire/config"
	"campushire/database"
	"campushire/middleware"
	"campushire/models"
	courseModels "campushire/models/course"
	"campushire/services/learning"
	"campushire/utils"

	"github.com/gofiber/fiber/v2"
)

func newLearningServices() (*learning.QuizEngine, *learning.ProgressStore, *learning.ProgressTracker, *learning.Orchestrator) {
	db := database.Database.Db
	tables := config.AppConfig.Tables

	engine := learning.NewQuizEngine(db, tables)
	store := learning.NewProgressStore(db, tables)
	tracker := learning.NewProgressTracker(db, tables, store)
	orchestrator := learning.NewOrchestrator(db, tables, engine, store, tracker)
	return engine, store, tracker, orchestrator
}

// CreateQuiz creates a quiz with its questions under a module
func CreateQuiz(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	// Module must belong to the course
	var module courseModels.Module
	if err := database.Database.Db.Table(config.AppConfig.Tables.ModulesTable).
		Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*learning.QuizInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	engine, _, _, _ := newLearningServices()

	quiz, err := engine.CreateQuiz(uint(moduleID), *reqData)
	if err != nil {
		return respondLearningError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// SubmitQuiz scores a quiz submission and updates the enrollment progress
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)

	// Check enrollment before scoring anything
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	answers, ok := c.Locals("validatedAnswers").(map[uint]string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	_, _, _, orchestrator := newLearningServices()

	result, err := orchestrator.SubmitQuiz(userID, uint(courseID), uint(quizID), answers)
	if err != nil {
		return respondLearningError(c, err)
	}

	message := "Quiz submitted!"
	if result.Passed {
		message = "Quiz passed!"

		var user models.User
		var quiz courseModels.Quiz
		db := database.Database.Db
		if db.First(&user, userID).Error == nil &&
			db.Table(config.AppConfig.Tables.QuizTable).First(&quiz, quizID).Error == nil {
			utils.SendQuizPassedEmail(user.Email, user.Name, quiz.Title, result.Submission.Score)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}

// GetQuizProgress returns the pass/fail record for a quiz, or never-attempted
func GetQuizProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)

	_, _, _, orchestrator := newLearningServices()

	// Resolved through the quiz so content-embedded quizzes read the same
	// tracking key the submit flow writes under
	record, err := orchestrator.QuizProgress(userID, uint(courseID), uint(quizID))
	if err != nil {
		return respondLearningError(c, err)
	}
	if record == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz not attempted yet.", fiber.Map{
			"attempted": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz progress fetched successfully!", fiber.Map{
		"attempted": true,
		"progress":  record,
	})
}
