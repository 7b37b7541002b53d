// Package server contains the HTTP handlers for the movie list API.
package server

import (
	"errors"

	"reelist/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseQueryID extracts the "id" query parameter as a positive uint.
// A missing parameter is reported via found=false so callers can treat the
// request as a no-op; a present but malformed value writes a 400 response
// and returns errResponseWritten.
func (s *Server) parseQueryID(c *fiber.Ctx) (id uint, found bool, err error) {
	raw := c.Query("id")
	if raw == "" {
		return 0, false, nil
	}
	n := c.QueryInt("id")
	if n <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid id"))
		return 0, false, errResponseWritten
	}
	return uint(n), true, nil
}

// currentUserID returns the authenticated user's ID.  Only valid on routes
// behind SessionRequired.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// respondRepoError maps repository AppError codes to HTTP statuses.
func respondRepoError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "DUPLICATE_EMAIL":
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		case "CATALOG_UNAVAILABLE":
			return models.RespondWithError(c, fiber.StatusBadGateway, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
