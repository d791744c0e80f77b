package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/services"
)

type GuestHandler struct {
	weddingService *services.WeddingService
	guestService   *services.GuestService
}

func NewGuestHandler(weddingService *services.WeddingService, guestService *services.GuestService) *GuestHandler {
	return &GuestHandler{weddingService: weddingService, guestService: guestService}
}

func (h *GuestHandler) List(c *fiber.Ctx) error {
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

	return c.JSON(dto.GuestListResponse{Guests: guests, Total: len(guests)})
}

func (h *GuestHandler) Create(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	var req dto.CreateGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	guest, err := h.guestService.Create(acc.Wedding.ID, &req)
	if err != nil {
		return guestError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(guest)
}

func (h *GuestHandler) Update(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	guestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid guest id",
		})
	}

	var req dto.UpdateGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	guest, err := h.guestService.Update(acc.Wedding.ID, guestID, &req)
	if err != nil {
		return guestError(c, err)
	}

	return c.JSON(guest)
}

func (h *GuestHandler) Delete(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	guestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid guest id",
		})
	}

	if err := h.guestService.Delete(acc.Wedding.ID, guestID); err != nil {
		return guestError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Guest deleted"})
}

func guestError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrGuestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidGuest):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
