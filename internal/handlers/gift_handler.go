package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/weddlist/backend/internal/dto"
	"github.com/weddlist/backend/internal/services"
	"github.com/weddlist/backend/internal/stats"
)

type GiftHandler struct {
	weddingService *services.WeddingService
	guestService   *services.GuestService
}

func NewGiftHandler(weddingService *services.WeddingService, guestService *services.GuestService) *GiftHandler {
	return &GiftHandler{weddingService: weddingService, guestService: guestService}
}

// List serves the gift registry: one row per gifted guest, filtered and
// sorted by query params, with the money total alongside.
func (h *GiftHandler) List(c *fiber.Ctx) error {
	_, acc, ok := requireAccess(c, h.weddingService)
	if !ok {
		return nil
	}

	guests, err := h.guestService.List(acc.Wedding.ID, stats.Filter{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	rows := stats.GiftRows(guests)
	rows = stats.FilterGifts(rows, stats.GiftFilter{
		Search: c.Query("search"),
		Side:   c.Query("side"),
		Type:   c.Query("type"),
	})

	sortKey := stats.GiftSortKey(c.Query("sort", string(stats.SortByName)))
	if !sortKey.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "sort must be one of name, amount, type, side",
		})
	}
	stats.SortGifts(rows, sortKey, c.Query("order") == "desc")

	return c.JSON(fiber.Map{
		"gifts":        rows,
		"total":        len(rows),
		"total_amount": stats.MoneyTotal(rows),
	})
}
