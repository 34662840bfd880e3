package achievements

import (
	"binder-backend/internal/middleware"
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles achievement handlers.
type Handlers struct {
	Service *Service
}

// ViewAchievements GET /api/v1/achievements/view-achievements
func (h *Handlers) ViewAchievements(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	list, err := h.Service.List(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Achievements fetched successfully", list, fiber.Map{
		"unlocked": len(list),
		"total":    len(Definitions),
	})
}
