package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/services"
)

type GroupHandler struct {
	weddingService *services.WeddingService
	groupService   *services.GroupService
}

func NewGroupHandler(weddingService *services.WeddingService, groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{weddingService: weddingService, groupService: groupService}
}

func (h *GroupHandler) List(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	groups, err := h.groupService.List(acc.Wedding.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(groups)
}

// ListWithStats serves the dashboard group panel: every group with its
// totals under the active filter.
func (h *GroupHandler) ListWithStats(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	groups, err := h.groupService.ListWithStats(acc.Wedding.ID, guestFilter(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(groups)
}

func (h *GroupHandler) Create(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	group, err := h.groupService.Create(acc.Wedding.ID, &req)
	if err != nil {
		return groupError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *GroupHandler) Update(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	var req dto.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	group, err := h.groupService.Update(acc.Wedding.ID, groupID, &req)
	if err != nil {
		return groupError(c, err)
	}

	return c.JSON(group)
}

func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	if err := h.groupService.Delete(acc.Wedding.ID, groupID); err != nil {
		return groupError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Group deleted"})
}

func groupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrGroupNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidGroup):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
