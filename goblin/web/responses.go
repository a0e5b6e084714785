package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type apiResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     *apiError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func sendSuccess(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusOK).JSON(apiResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// errorHandler renders every error as the JSON envelope. Errors that are not
// *fiber.Error become a 500 with a generic message.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(apiResponse{
		Error:     &apiError{Code: code, Message: message},
		Timestamp: time.Now().UTC(),
	})
}
