package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/services"
)

type CollaboratorHandler struct {
	weddingService *services.WeddingService
	collabService  *services.CollaboratorService
}

func NewCollaboratorHandler(weddingService *services.WeddingService, collabService *services.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{weddingService: weddingService, collabService: collabService}
}

func (h *CollaboratorHandler) List(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	collabs, err := h.collabService.List(acc.Wedding.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(collabs)
}

func (h *CollaboratorHandler) Share(c *fiber.Ctx) error {
	identity, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}
	if acc.Role != services.RoleOwner {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrNotOwner.Error(),
		})
	}

	var req dto.ShareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.collabService.Share(c.UserContext(), acc.Wedding, identity.Email, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) || errors.Is(err, services.ErrCannotShareWithSelf) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}

func (h *CollaboratorHandler) Revoke(c *fiber.Ctx) error {
	identity, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	target := c.Params("email")
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "email is required",
		})
	}

	err := h.collabService.Revoke(c.UserContext(), acc.Wedding, acc.Role, identity.UserID, identity.Email, target)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrCollaboratorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Collaborator removed"})
}
