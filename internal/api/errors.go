package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"discussion-service/internal/service"
)

// serviceError maps business errors onto status codes. Storage and unknown
// failures get a generic body; the detail stays in the logs.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(400, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(409, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(404, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrAuthentication):
		return c.JSON(401, map[string]string{"error": err.Error()})
	default:
		return c.JSON(500, map[string]string{"error": "internal server error"})
	}
}
