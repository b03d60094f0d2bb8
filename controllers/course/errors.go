package controllers

import (
	"campushire/middleware"
	"campushire/services/learning"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// respondLearningError maps a learning service error to an HTTP response.
// Business kinds keep their own message; anything else becomes a generic 500.
func respondLearningError(c *fiber.Ctx, err error) error {
	var validationErr *learning.ValidationError
	if errors.As(err, &validationErr) {
		return middleware.ValidationErrorResponse(c, validationErr.Fields)
	}

	var notFoundErr *learning.NotFoundError
	if errors.As(err, &notFoundErr) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, notFoundErr.Error(), nil)
	}

	var attemptErr *learning.AttemptLimitError
	if errors.As(err, &attemptErr) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, attemptErr.Error(), nil)
	}

	var passedErr *learning.AlreadyPassedError
	if errors.As(err, &passedErr) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, passedErr.Error(), nil)
	}

	var inputErr *learning.InvalidInputError
	if errors.As(err, &inputErr) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, inputErr.Error(), nil)
	}

	log.Printf("Learning service error: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
