package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// serviceErrorStatus classifies an error that crossed the module service bus
// (where typed errors are flattened to messages) into an HTTP status and a
// short error code. Anything it cannot classify is a 500.
func serviceErrorStatus(err error) (int, string, string) {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid credentials"):
		return fiber.StatusUnauthorized, "unauthorized", "Invalid credentials"
	case strings.Contains(errStr, "already exists"):
		return fiber.StatusConflict, "conflict", "User with this email already exists"
	case strings.Contains(errStr, "task not found"):
		return fiber.StatusNotFound, "not_found", "Task not found"
	case strings.Contains(errStr, "title is required"):
		return fiber.StatusBadRequest, "bad_request", "Title is required"
	case strings.Contains(errStr, "are required"):
		return fiber.StatusBadRequest, "bad_request", "All fields are required"
	case strings.Contains(errStr, "invalid email format"):
		return fiber.StatusBadRequest, "bad_request", "Invalid email format"
	case strings.Contains(errStr, "password must be at least"):
		return fiber.StatusBadRequest, "bad_request", "Password must be at least 6 characters"
	case strings.Contains(errStr, "password must be at most"):
		return fiber.StatusBadRequest, "bad_request", "Password must be at most 72 characters"
	case strings.Contains(errStr, "invalid status"):
		return fiber.StatusBadRequest, "bad_request", "Invalid status value"
	case strings.Contains(errStr, "invalid priority"):
		return fiber.StatusBadRequest, "bad_request", "Invalid priority value"
	case strings.Contains(errStr, "invalid due date"):
		return fiber.StatusBadRequest, "bad_request", "Invalid due date format"
	default:
		return fiber.StatusInternalServerError, "internal_error", "An internal error occurred"
	}
}

// handleServiceError converts a service bus error into an HTTP error
// response. Unclassified errors are logged server-side and never exposed to
// the client.
func handleServiceError(c *fiber.Ctx, err error) error {
	status, code, message := serviceErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("[api] Internal error: %v", err)
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// badRequest returns a 400 response with the given message.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}
