package collection

import (
	"binder-backend/internal/middleware"
	"binder-backend/internal/models"
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers bundles collection handlers.
type Handlers struct {
	Service *Service
}

type toggleRequest struct {
	CardID  string `json:"card_id"`
	Variant string `json:"variant"`
}

// AddVariant POST /api/v1/collection/add-variant
func (h *Handlers) AddVariant(c *fiber.Ctx) error {
	return h.toggle(c, true)
}

// RemoveVariant POST /api/v1/collection/remove-variant
func (h *Handlers) RemoveVariant(c *fiber.Ctx) error {
	return h.toggle(c, false)
}

func (h *Handlers) toggle(c *fiber.Ctx, add bool) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req toggleRequest
	if err := c.BodyParser(&req); err != nil || req.CardID == "" {
		return response.Error(c, "card_id is required", fiber.StatusBadRequest, nil)
	}
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		return response.Error(c, "Invalid card ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	variant := models.ParseVariant(req.Variant)

	var result *MutationResult
	if add {
		result, err = h.Service.AddVariant(c.Context(), userID, cardID, variant)
	} else {
		result, err = h.Service.RemoveVariant(c.Context(), userID, cardID, variant)
	}
	if err != nil {
		switch err.Error() {
		case "Card not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	// Side effects run after commit and never fail the mutation.
	runEffects(c, result)

	msg := "Variant added"
	if !add {
		msg = "Variant removed"
		if result.NoOp {
			msg = "Nothing to remove"
		}
	}
	return response.Success(c, msg, result, nil)
}

// ViewCollection GET /api/v1/collection/view-collection
func (h *Handlers) ViewCollection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	items, err := h.Service.ViewCollection(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	// Keyed by card id for client-side lookup.
	out := make(map[string]*AggregateItem, len(items))
	for id, item := range items {
		out[id.String()] = item
	}
	return response.Success(c, "Collection fetched successfully", out, fiber.Map{"cards": len(out)})
}

// ViewCard GET /api/v1/collection/view-card/:card_id
func (h *Handlers) ViewCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	cardID, err := uuid.Parse(c.Params("card_id"))
	if err != nil {
		return response.Error(c, "Invalid card ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	item, err := h.Service.ViewCard(c.Context(), userID, cardID)
	if err != nil {
		switch err.Error() {
		case "Card not in collection":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Card fetched successfully", item, nil)
}

func runEffects(c *fiber.Ctx, result *MutationResult) {
	traceID := middleware.GetTraceID(c)
	for _, effect := range result.Effects {
		if err := effect.Run(c.Context()); err != nil {
			log.Warn().Str("trace_id", traceID).Str("effect", effect.Name).Err(err).
				Msg("post-commit effect failed")
		}
	}
}
