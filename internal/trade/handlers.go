package trade

import (
	"binder-backend/internal/middleware"
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles trade handlers.
type Handlers struct {
	Service *Service
}

type offerBody struct {
	Cards []struct {
		CardID    string  `json:"card_id"`
		Name      string  `json:"name"`
		ImageURL  string  `json:"image_url"`
		UnitPrice float64 `json:"unit_price"`
		Quantity  int     `json:"quantity"`
		Condition string  `json:"condition"`
		Available int     `json:"available"`
	} `json:"cards"`
	Money            float64 `json:"money"`
	ShippingIncluded bool    `json:"shipping_included"`
}

type submitRequest struct {
	RecipientID    string    `json:"recipient_id"`
	MyOffer        offerBody `json:"my_offer"`
	TheirOffer     offerBody `json:"their_offer"`
	Message        string    `json:"message"`
	TradeMethod    string    `json:"trade_method"`
	CounterOfferOf string    `json:"counter_offer_of"`
}

// SubmitTrade POST /api/v1/trades/submit-trade
func (h *Handlers) SubmitTrade(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if req.RecipientID == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for recipient_id", fiber.StatusBadRequest, nil)
	}

	myOffer, err := decodeOffer(SideMine, req.MyOffer)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	theirOffer, err := decodeOffer(SideTheirs, req.TheirOffer)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}

	input := SubmitInput{
		InitiatorID: userID,
		RecipientID: recipientID,
		MyOffer:     myOffer,
		TheirOffer:  theirOffer,
		Message:     req.Message,
		TradeMethod: req.TradeMethod,
	}
	if req.CounterOfferOf != "" {
		parentID, err := uuid.Parse(req.CounterOfferOf)
		if err != nil {
			return response.Error(c, "Invalid UUID format for counter_offer_of", fiber.StatusBadRequest, nil)
		}
		input.CounterOfferOf = &parentID
	}

	trade, err := h.Service.SubmitTrade(c.Context(), input)
	if err != nil {
		switch err.Error() {
		case "Both offers are required", "Trade offer is empty", "Cannot trade with yourself", "Invalid quantity":
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case "Recipient not found", "Parent trade not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case "Unauthorized access to trade":
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case "Parent trade is no longer pending":
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			if isInsufficientQuantity(err) {
				return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
			}
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	return response.SuccessCreated(c, "Trade submitted successfully", trade, nil)
}

// GetTrades GET /api/v1/trades/get-trades
func (h *Handlers) GetTrades(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	trades, err := h.Service.ListTrades(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Trades fetched successfully", trades, fiber.Map{"count": len(trades)})
}

// ViewTrade GET /api/v1/trades/view-trade/:trade_id
func (h *Handlers) ViewTrade(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	tradeID, err := uuid.Parse(c.Params("trade_id"))
	if err != nil {
		return response.Error(c, "Invalid trade ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	view, err := h.Service.ViewTrade(c.Context(), tradeID, userID)
	if err != nil {
		return tradeError(c, err)
	}
	return response.Success(c, "Trade fetched successfully", view, nil)
}

// CounterOffer GET /api/v1/trades/counter-offer/:trade_id — prefilled offers
// for building a counter-proposal.
func (h *Handlers) CounterOffer(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	tradeID, err := uuid.Parse(c.Params("trade_id"))
	if err != nil {
		return response.Error(c, "Invalid trade ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	mine, theirs, err := h.Service.CounterOffersFor(c.Context(), tradeID, userID)
	if err != nil {
		return tradeError(c, err)
	}
	return response.Success(c, "Counter-offer prepared", fiber.Map{
		"my_offer":    mine,
		"their_offer": theirs,
	}, nil)
}

type respondRequest struct {
	TradeID string `json:"trade_id"`
	Action  string `json:"action"`
}

// RespondToTrade POST /api/v1/trades/respond-trade
func (h *Handlers) RespondToTrade(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req respondRequest
	if err := c.BodyParser(&req); err != nil || req.TradeID == "" || req.Action == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	tradeID, err := uuid.Parse(req.TradeID)
	if err != nil {
		return response.Error(c, "Invalid trade ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	trade, err := h.Service.RespondToTrade(c.Context(), tradeID, userID, req.Action)
	if err != nil {
		switch err.Error() {
		case "Trade not found":
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case "Trade is no longer pending", "Trade has expired":
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		case "Only the recipient can accept", "Only the recipient can decline", "Only the initiator can cancel":
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case "Invalid action":
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Trade updated successfully", trade, nil)
}

func decodeOffer(side Side, body offerBody) (*Offer, error) {
	offer := NewOffer(side)
	offer.SetMoney(body.Money)
	offer.SetShippingIncluded(body.ShippingIncluded)
	for _, card := range body.Cards {
		cardID, err := uuid.Parse(card.CardID)
		if err != nil {
			return nil, errInvalidCardID
		}
		offer.Cards = append(offer.Cards, OfferCard{
			CardID:    cardID,
			Name:      card.Name,
			ImageURL:  card.ImageURL,
			UnitPrice: card.UnitPrice,
			Quantity:  card.Quantity,
			Condition: card.Condition,
			Available: card.Available,
		})
	}
	return offer, nil
}

func tradeError(c *fiber.Ctx, err error) error {
	switch err.Error() {
	case "Trade not found":
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case "Unauthorized access to trade":
		return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
