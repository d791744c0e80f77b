package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/weddlist/backend/internal/access"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/services"
	"github.com/weddlist/backend/internal/stats"
)

// requireAccess resolves the caller's identity and wedding in one step.
// On failure it writes the error response and reports ok=false; handlers
// just return nil in that case.
func requireAccess(c *fiber.Ctx, weddings *services.WeddingService) (access.Identity, *services.Access, bool) {
	identity, err := access.FromContext(c)
	if err != nil {
		c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
		return access.Identity{}, nil, false
	}

	acc, err := weddings.ResolveForUser(c.UserContext(), identity.UserID, identity.Email)
	if err != nil {
		if errors.Is(err, services.ErrNoWedding) {
			c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		} else {
			c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		return identity, nil, false
	}

	return identity, acc, true
}

// guestFilter reads the shared list-filtering query params.
func guestFilter(c *fiber.Ctx) stats.Filter {
	return stats.Filter{
		Search:     c.Query("search"),
		Side:       c.Query("side"),
		Attendance: c.Query("attendance"),
		View:       stats.ViewMode(c.Query("view")),
	}
}
