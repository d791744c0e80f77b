package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/weddlist/backend/internal/access"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/services"
	"github.com/weddlist/backend/internal/stats"
)

type WeddingHandler struct {
	weddingService *services.WeddingService
	guestService   *services.GuestService
}

func NewWeddingHandler(weddingService *services.WeddingService, guestService *services.GuestService) *WeddingHandler {
	return &WeddingHandler{weddingService: weddingService, guestService: guestService}
}

func (h *WeddingHandler) Get(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}
	return c.JSON(dto.NewWeddingResponse(acc.Wedding, acc.Role))
}

func (h *WeddingHandler) Setup(c *fiber.Ctx) error {
	identity, err := access.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.WeddingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	wedding, err := h.weddingService.Setup(c.UserContext(), identity.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeddingExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidWedding):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewWeddingResponse(wedding, services.RoleOwner))
}

func (h *WeddingHandler) Update(c *fiber.Ctx) error {
	identity, err := access.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.WeddingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	wedding, err := h.weddingService.Update(c.UserContext(), identity.UserID, identity.Email, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoWedding):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidWedding):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.NewWeddingResponse(wedding, services.RoleOwner))
}

// Stats returns the dashboard totals for the caller's wedding under the
// active filter.
func (h *WeddingHandler) Stats(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	guests, err := h.guestService.List(acc.Wedding.ID, guestFilter(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(stats.Compute(guests, acc.Wedding.PricePerPerson))
}
