package cards

import (
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles card-browsing handlers.
type Handlers struct {
	Service *Service
}

// GetSets GET /api/v1/cards/get-sets
func (h *Handlers) GetSets(c *fiber.Ctx) error {
	sets, err := h.Service.ListSets(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Sets fetched successfully", sets, fiber.Map{"count": len(sets)})
}

// GetSetCards GET /api/v1/cards/get-set-cards/:set_code
func (h *Handlers) GetSetCards(c *fiber.Ctx) error {
	setCode := c.Params("set_code")
	if setCode == "" {
		return response.Error(c, "set_code is required", fiber.StatusBadRequest, nil)
	}

	cards, err := h.Service.ListSetCards(c.Context(), setCode)
	if err != nil {
		switch err.Error() {
		case "Set not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Cards fetched successfully", cards, fiber.Map{"count": len(cards)})
}

// ViewCard GET /api/v1/cards/view-card/:card_id
func (h *Handlers) ViewCard(c *fiber.Ctx) error {
	cardID, err := uuid.Parse(c.Params("card_id"))
	if err != nil {
		return response.Error(c, "Invalid card ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	card, err := h.Service.GetCard(c.Context(), cardID)
	if err != nil {
		switch err.Error() {
		case "Card not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Card fetched successfully", card, nil)
}

// Search GET /api/v1/cards/search?q=
func (h *Handlers) Search(c *fiber.Ctx) error {
	cards, err := h.Service.Search(c.Context(), c.Query("q"))
	if err != nil {
		switch err.Error() {
		case "Search query is required":
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Search results", cards, fiber.Map{"count": len(cards)})
}
