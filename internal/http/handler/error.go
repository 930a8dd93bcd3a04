package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"issuetracker/internal/http/middleware"
	"issuetracker/internal/service"
)

// domainError is the body of an issue domain failure, always sent with status 200.
type domainError struct {
	Error string `json:"error"`
	ID    string `json:"_id,omitempty"`
}

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "BAD_REQUEST", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// respondError maps a service error to a response. Domain failures keep
// status 200 and expose only their message and _id; anything else is a 500.
func respondError(c *fiber.Ctx, err error) error {
	var ie *service.IssueError
	if errors.As(err, &ie) {
		return c.Status(fiber.StatusOK).JSON(domainError{Error: ie.Err.Error(), ID: ie.ID})
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusUnsupportedMediaType:
			return writeError(c, status, "UNSUPPORTED_MEDIA_TYPE", "unsupported media type")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
