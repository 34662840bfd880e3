package wishlist

import (
	"binder-backend/internal/middleware"
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles wishlist handlers.
type Handlers struct {
	Service *Service
}

type addRequest struct {
	CardID string `json:"card_id"`
}

// AddCard POST /api/v1/wishlist/add-card
func (h *Handlers) AddCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req addRequest
	if err := c.BodyParser(&req); err != nil || req.CardID == "" {
		return response.Error(c, "card_id is required", fiber.StatusBadRequest, nil)
	}
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		return response.Error(c, "Invalid card ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	item, err := h.Service.Add(c.Context(), userID, cardID)
	if err != nil {
		switch err.Error() {
		case "Card not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case "Card already in wishlist":
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Card added to wishlist", item, nil)
}

// RemoveCard DELETE /api/v1/wishlist/remove-card/:card_id
// Removing a card that is not on the wishlist succeeds (no-op).
func (h *Handlers) RemoveCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	cardID, err := uuid.Parse(c.Params("card_id"))
	if err != nil {
		return response.Error(c, "Invalid card ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.RemoveIfPresent(c.Context(), userID, cardID); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Card removed from wishlist", nil, nil)
}

// ViewWishlist GET /api/v1/wishlist/view-wishlist
func (h *Handlers) ViewWishlist(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	items, err := h.Service.List(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Wishlist fetched successfully", items, fiber.Map{"count": len(items)})
}
