package stats

import (
	"binder-backend/internal/middleware"
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles stats handlers.
type Handlers struct {
	Service *Service
}

// ViewStats GET /api/v1/stats/view-stats
func (h *Handlers) ViewStats(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	preferred := middleware.GetUserField(c, "preferred_currency")
	locale := middleware.GetUserField(c, "locale")

	stats, err := h.Service.ViewStats(c.Context(), userID, preferred, locale)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats fetched successfully", stats, nil)
}
