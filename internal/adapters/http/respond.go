package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hyfac/catalog/internal/core/domain"
)

// Envelope is the uniform response shape for every REST endpoint.
// Successful responses carry Data, failures carry Errors.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    interface{} `json:"errors,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// respond writes a success envelope.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: reqID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondPage writes a success envelope with pagination metadata.
func respondPage(c *fiber.Ctx, message string, data interface{}, pg Pagination) error {
	reqID, _ := c.Locals("requestid").(string)
	SetLinkHeaders(c, pg)
	return c.JSON(Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      pg,
		RequestID: reqID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError writes a failure envelope.
func respondError(c *fiber.Ctx, status int, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(Envelope{
		Success:   false,
		Message:   message,
		Errors:    []string{message},
		RequestID: reqID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// errBadRequest returns a 400 envelope.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return respondError(c, 400, msg)
}

// errNotFound returns a 404 envelope.
func errNotFound(c *fiber.Ctx, msg string) error {
	return respondError(c, 404, msg)
}

// errConflict returns a 409 envelope.
func errConflict(c *fiber.Ctx, msg string) error {
	return respondError(c, 409, msg)
}

// errInternal returns a 500 envelope.
func errInternal(c *fiber.Ctx, msg string) error {
	return respondError(c, 500, msg)
}

// errFromDomain maps domain sentinel errors onto HTTP statuses.
// notFoundMsg is used for ErrNotFound so handlers can name the resource.
func errFromDomain(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, notFoundMsg)
	case errors.Is(err, domain.ErrConflict):
		return errConflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		return errBadRequest(c, err.Error())
	default:
		return errInternal(c, err.Error())
	}
}
