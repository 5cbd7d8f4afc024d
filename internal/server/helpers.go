package server

import (
	"log/slog"
	"strconv"

	"cafehub/internal/middleware"
	"cafehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// pathID reads the :id route parameter as a positive integer.
func pathID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// respondError writes err as JSON with the status its code maps to.
// Server-side failures are logged with the request context.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("route", c.Route().Path),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}
