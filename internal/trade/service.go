package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"binder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trades expire a week after submission; pending trades past expiry read as
// expired without a write.
const tradeLifetime = 7 * 24 * time.Hour

type Service struct {
	DB *gorm.DB
}

// SubmitInput carries everything needed to persist a proposed trade.
type SubmitInput struct {
	InitiatorID    uuid.UUID
	RecipientID    uuid.UUID
	MyOffer        *Offer
	TheirOffer     *Offer
	Message        string
	TradeMethod    string
	CounterOfferOf *uuid.UUID
}

// TradeView is a trade plus its items, with effective (expiry-adjusted) status.
type TradeView struct {
	models.Trade
	Items []models.TradeItem `json:"items"`
}

// SubmitTrade persists a trade proposal in a single transaction: supersede
// the parent when this is a counter-offer, create the Trade, then bulk-create
// one TradeItem per offer card on both sides. Any failure rolls everything
// back; no orphaned Trade rows.
func (s *Service) SubmitTrade(ctx context.Context, input SubmitInput) (*models.Trade, error) {
	if input.MyOffer == nil || input.TheirOffer == nil {
		return nil, errors.New("Both offers are required")
	}
	if len(input.MyOffer.Cards) == 0 && len(input.TheirOffer.Cards) == 0 &&
		input.MyOffer.Money == 0 && input.TheirOffer.Money == 0 {
		return nil, errors.New("Trade offer is empty")
	}
	if input.InitiatorID == input.RecipientID {
		return nil, errors.New("Cannot trade with yourself")
	}

	var created models.Trade

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipient models.User
		if err := tx.Where("user_id = ?", input.RecipientID).First(&recipient).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New("Recipient not found")
			}
			return err
		}

		if input.CounterOfferOf != nil {
			if err := declineParent(tx, *input.CounterOfferOf, input.InitiatorID); err != nil {
				return err
			}
		}

		// The submitter's side is checked against live collection rows; the
		// recipient re-validates when accepting.
		if err := validateAgainstCollection(tx, input.InitiatorID, input.MyOffer); err != nil {
			return err
		}

		method := input.TradeMethod
		if method == "" {
			method = "mail"
		}
		created = models.Trade{
			InitiatorID:       input.InitiatorID,
			RecipientID:       input.RecipientID,
			Status:            models.TradePending,
			InitiatorMoney:    input.MyOffer.Money,
			RecipientMoney:    input.TheirOffer.Money,
			InitiatorShipping: input.MyOffer.ShippingIncluded,
			RecipientShipping: input.TheirOffer.ShippingIncluded,
			TradeMethod:       method,
			Message:           input.Message,
			ParentTradeID:     input.CounterOfferOf,
			ExpiresAt:         time.Now().Add(tradeLifetime),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		items := buildItems(created.TradeID, input.InitiatorID, input.MyOffer)
		items = append(items, buildItems(created.TradeID, input.RecipientID, input.TheirOffer)...)
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTrades returns trades where the user is either party, newest first.
func (s *Service) ListTrades(ctx context.Context, userID uuid.UUID) ([]TradeView, error) {
	var trades []models.Trade
	if err := s.DB.WithContext(ctx).
		Where("initiator_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&trades).Error; err != nil {
		return nil, err
	}

	views := make([]TradeView, 0, len(trades))
	for _, t := range trades {
		applyExpiry(&t)
		views = append(views, TradeView{Trade: t})
	}
	return views, nil
}

// ViewTrade returns one trade with its items; only a party may view it.
func (s *Service) ViewTrade(ctx context.Context, tradeID, userID uuid.UUID) (*TradeView, error) {
	var t models.Trade
	if err := s.DB.WithContext(ctx).Where("trade_id = ?", tradeID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Trade not found")
		}
		return nil, err
	}
	if t.InitiatorID != userID && t.RecipientID != userID {
		return nil, errors.New("Unauthorized access to trade")
	}
	applyExpiry(&t)

	var items []models.TradeItem
	if err := s.DB.WithContext(ctx).Where("trade_id = ?", tradeID).Find(&items).Error; err != nil {
		return nil, err
	}
	return &TradeView{Trade: t, Items: items}, nil
}

// RespondToTrade transitions a pending, unexpired trade: the recipient may
// accept or decline, the initiator may cancel.
func (s *Service) RespondToTrade(ctx context.Context, tradeID, userID uuid.UUID, action string) (*models.Trade, error) {
	var t models.Trade

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trade_id = ?", tradeID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New("Trade not found")
			}
			return err
		}
		if t.Status != models.TradePending {
			return errors.New("Trade is no longer pending")
		}
		if time.Now().After(t.ExpiresAt) {
			t.Status = models.TradeExpired
			return tx.Save(&t).Error
		}

		switch action {
		case "accept":
			if t.RecipientID != userID {
				return errors.New("Only the recipient can accept")
			}
			t.Status = models.TradeAccepted
		case "decline":
			if t.RecipientID != userID {
				return errors.New("Only the recipient can decline")
			}
			t.Status = models.TradeDeclined
		case "cancel":
			if t.InitiatorID != userID {
				return errors.New("Only the initiator can cancel")
			}
			t.Status = models.TradeCancelled
		default:
			return errors.New("Invalid action")
		}
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, err
	}
	if t.Status == models.TradeExpired {
		return nil, errors.New("Trade has expired")
	}
	return &t, nil
}

// CounterOffersFor loads a trade and builds prefilled mine/theirs offers for
// the viewer, ready for editing and resubmission.
func (s *Service) CounterOffersFor(ctx context.Context, tradeID, viewerID uuid.UUID) (mine, theirs *Offer, err error) {
	view, err := s.ViewTrade(ctx, tradeID, viewerID)
	if err != nil {
		return nil, nil, err
	}

	cardIDs := make([]uuid.UUID, 0, len(view.Items))
	for _, item := range view.Items {
		cardIDs = append(cardIDs, item.CardID)
	}
	cards := make(map[uuid.UUID]models.Card, len(cardIDs))
	if len(cardIDs) > 0 {
		var rows []models.Card
		if err := s.DB.WithContext(ctx).Where("card_id IN ?", cardIDs).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
		for _, card := range rows {
			cards[card.CardID] = card
		}
	}

	mine, theirs = BuildCounterOffers(&view.Trade, view.Items, cards, viewerID)
	return mine, theirs, nil
}

func declineParent(tx *gorm.DB, parentID, initiatorID uuid.UUID) error {
	var parent models.Trade
	if err := tx.Where("trade_id = ?", parentID).First(&parent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.New("Parent trade not found")
		}
		return err
	}
	if parent.InitiatorID != initiatorID && parent.RecipientID != initiatorID {
		return errors.New("Unauthorized access to trade")
	}
	if parent.Status != models.TradePending {
		return errors.New("Parent trade is no longer pending")
	}
	parent.Status = models.TradeDeclined
	return tx.Save(&parent).Error
}

// validateAgainstCollection checks each offered card against the total the
// user actually holds across variants at the offered condition.
func validateAgainstCollection(tx *gorm.DB, userID uuid.UUID, offer *Offer) error {
	for _, card := range offer.Cards {
		if card.Quantity < 1 {
			return errors.New("Invalid quantity")
		}
		var held int64
		row := tx.Model(&models.CollectionEntry{}).
			Where("user_id = ? AND card_id = ?", userID, card.CardID).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&held)
		if row.Error != nil {
			return row.Error
		}
		if int64(card.Quantity) > held {
			return fmt.Errorf("Insufficient quantity for %s", card.Name)
		}
	}
	return nil
}

func buildItems(tradeID, ownerID uuid.UUID, offer *Offer) []models.TradeItem {
	items := make([]models.TradeItem, 0, len(offer.Cards))
	for _, card := range offer.Cards {
		items = append(items, models.TradeItem{
			TradeID:   tradeID,
			OwnerID:   ownerID,
			CardID:    card.CardID,
			Quantity:  card.Quantity,
			Condition: card.Condition,
		})
	}
	return items
}

func applyExpiry(t *models.Trade) {
	if t.Status == models.TradePending && time.Now().After(t.ExpiresAt) {
		t.Status = models.TradeExpired
	}
}
