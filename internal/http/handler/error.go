package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pdfmanager/internal/http/middleware"
	"pdfmanager/internal/service"
)

const (
	msgFileRequired     = "File is required"
	msgFileNotPDF       = "File must be .pdf"
	msgLabelRequired    = "'Label' is a required field"
	msgNotFound         = "Not found any document with the provided id"
	msgDuplicate        = "A document with this file already exists"
	msgInvalidBody      = "Invalid request body"
	msgTooLarge         = "File exceeds the maximum allowed size"
	msgInternal         = "Internal server error"
	msgUnavailable      = "Service unavailable"
	msgRouteNotFound    = "Not found"
	msgMethodNotAllowed = "Method not allowed"
	msgBadRequest       = "Bad request"
)

// errorPayload is the body of every failed response.
type errorPayload struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// messagePayload is the body of successful mutations.
type messagePayload struct {
	Message string `json:"message"`
}

// writeError writes a JSON error body without leaking internal errors.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{
		Message:   message,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// serviceError answers the errors the document service reports as client
// faults. Anything else is returned so the global ErrorHandler logs it and
// responds 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case service.IsValidationError(err):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMissingFile):
		return writeError(c, fiber.StatusBadRequest, msgFileRequired)
	case errors.Is(err, service.ErrUnsupportedType):
		return writeError(c, fiber.StatusBadRequest, msgFileNotPDF)
	case errors.Is(err, service.ErrMissingLabel):
		return writeError(c, fiber.StatusBadRequest, msgLabelRequired)
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrDuplicate):
		return writeError(c, fiber.StatusConflict, msgDuplicate)
	default:
		return err
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses and logs server-side failures with their request id.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, msgBadRequest)
		case fiber.StatusNotFound:
			return writeError(c, status, msgRouteNotFound)
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, msgMethodNotAllowed)
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, msgTooLarge)
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, msgUnavailable)
		}

		log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.RequestIDFrom(c),
			"method":     c.Method(),
			"path":       c.Path(),
		}).Error("request_failed")
		return writeError(c, fiber.StatusInternalServerError, msgInternal)
	}
}
