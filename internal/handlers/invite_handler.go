package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/weddlist/backend/internal/access"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/services"
)

type InviteHandler struct {
	weddingService *services.WeddingService
	collabService  *services.CollaboratorService
	authService    *services.AuthService
}

func NewInviteHandler(weddingService *services.WeddingService, collabService *services.CollaboratorService, authService *services.AuthService) *InviteHandler {
	return &InviteHandler{
		weddingService: weddingService,
		collabService:  collabService,
		authService:    authService,
	}
}

// Info is the public invite landing payload: just the couple's names, so
// the page can greet before any authentication happens.
func (h *InviteHandler) Info(c *fiber.Ctx) error {
	wedding, err := h.weddingService.ByInviteCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidInvite) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.InviteInfoResponse{
		BrideName: wedding.BrideName,
		GroomName: wedding.GroomName,
	})
}

// RequestLink mails a passwordless sign-in link tied to the invite. The
// invite code is validated first so dead codes never trigger mail.
func (h *InviteHandler) RequestLink(c *fiber.Ctx) error {
	code := c.Params("code")
	if _, err := h.weddingService.ByInviteCode(code); err != nil {
		if errors.Is(err, services.ErrInvalidInvite) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	var req dto.RequestLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.authService.RequestMagicLink(c.UserContext(), req.Email, code); err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Sign-in link sent"})
}

// Accept attaches the authenticated caller to the invite's wedding and
// tells the client where to route next.
func (h *InviteHandler) Accept(c *fiber.Ctx) error {
	identity, err := access.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.UserByID(identity.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.collabService.AcceptInvite(c.UserContext(), c.Params("code"), identity.UserID, identity.Email, user.HasPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInvite) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}
