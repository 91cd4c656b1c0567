package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/logger"
)

// RequestIdMiddleware tags each request with a uuid, echoed in the response
// header and available to log lines downstream.
func RequestIdMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := uuid.NewString()
		ctx.Locals("request_id", id)
		ctx.Set("X-Request-Id", id)
		return ctx.Next()
	}
}

// ErrorHandlerMiddleware maps classified errors bubbling out of handlers to
// an HTTP status plus a user-facing message from the fixed catalogue. Internal
// details go to the log, never to the caller.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		kind := apperr.KindOf(err)
		log.Error("http", "Request failed", map[string]interface{}{
			"request_id": ctx.Locals("request_id"),
			"path":       ctx.Path(),
			"kind":       kind.String(),
			"error":      err.Error(),
		})

		return ctx.Status(apperr.HTTPStatus(kind)).JSON(ErrorResponse(apperr.UserMessage(kind)))
	}
}
