package serverutils

import (
	"errors"

	"github.com/mawuli2121/Priya-Project/pkg/assistant"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// JSON envelope. ReportNotFound is kept distinct from provider failures: the
// run itself may have succeeded without producing a file.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if errors.Is(err, assistant.ErrReportNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(
				fiber.StatusNotFound,
				"Could not find the generated Markdown report in the assistant messages.",
			))
		}

		// Everything else is a provider-facing failure surfaced as-is.
		return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, err.Error()))
	}
}
