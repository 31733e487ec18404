package serverutils

import (
	"errors"

	"notesai-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the single place errors become HTTP responses.
// Handlers and services just return errors; nothing below this layer writes
// a status code.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{"error": apperrors.Message(err)})
	}
}
