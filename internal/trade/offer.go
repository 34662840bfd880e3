package trade

import (
	"binder-backend/internal/models"

	"github.com/google/uuid"
)

// Side marks which party an offer belongs to.
type Side string

const (
	SideMine   Side = "mine"
	SideTheirs Side = "theirs"
)

// InventoryCard is the snapshot an offer pulls cards from: one card of the
// offering party's collection with its total available quantity. UnitPrice is
// the market price in the reference currency.
type InventoryCard struct {
	CardID    uuid.UUID `json:"card_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	UnitPrice float64   `json:"unit_price"`
	Condition string    `json:"condition"`
	Available int       `json:"available"`
}

// OfferCard is one card line in an offer. Available is captured from the
// inventory at add time and bounds every later quantity change.
type OfferCard struct {
	CardID    uuid.UUID `json:"card_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Condition string    `json:"condition"`
	Available int       `json:"available"`
}

// Offer is one party's side of a proposed trade: cards, cash and a shipping
// term. It is a pure state container; all transitions go through the methods
// below and nothing here touches storage.
type Offer struct {
	Side             Side        `json:"side"`
	Cards            []OfferCard `json:"cards"`
	Money            float64     `json:"money"`
	ShippingIncluded bool        `json:"shipping_included"`
}

// NewOffer returns an empty offer for one side.
func NewOffer(side Side) *Offer {
	return &Offer{Side: side}
}

// AddCard adds one unit of a card from the inventory. If the card is already
// present its quantity goes up by 1, capped at the available quantity; extra
// adds past the cap are silently ignored. A fresh card enters at quantity 1
// with the inventory's condition.
func (o *Offer) AddCard(inv InventoryCard) {
	if inv.Available < 1 {
		return
	}
	for i := range o.Cards {
		if o.Cards[i].CardID == inv.CardID {
			if o.Cards[i].Quantity < o.Cards[i].Available {
				o.Cards[i].Quantity++
			}
			return
		}
	}
	o.Cards = append(o.Cards, OfferCard{
		CardID:    inv.CardID,
		Name:      inv.Name,
		ImageURL:  inv.ImageURL,
		UnitPrice: inv.UnitPrice,
		Quantity:  1,
		Condition: inv.Condition,
		Available: inv.Available,
	})
}

// RemoveCard deletes the card line entirely regardless of quantity.
func (o *Offer) RemoveCard(cardID uuid.UUID) {
	for i := range o.Cards {
		if o.Cards[i].CardID == cardID {
			o.Cards = append(o.Cards[:i], o.Cards[i+1:]...)
			return
		}
	}
}

// ChangeQuantity adjusts a card's quantity by delta. The result never drops
// below 1 (RemoveCard is the way out) and never exceeds the available
// quantity captured at add time.
func (o *Offer) ChangeQuantity(cardID uuid.UUID, delta int) {
	for i := range o.Cards {
		if o.Cards[i].CardID != cardID {
			continue
		}
		q := o.Cards[i].Quantity + delta
		if q < 1 {
			q = 1
		}
		if q > o.Cards[i].Available {
			q = o.Cards[i].Available
		}
		o.Cards[i].Quantity = q
		return
	}
}

// SetMoney replaces the cash amount; negative input is clipped to 0.
func (o *Offer) SetMoney(amount float64) {
	if amount < 0 {
		amount = 0
	}
	o.Money = amount
}

// SetShippingIncluded replaces the shipping flag.
func (o *Offer) SetShippingIncluded(included bool) {
	o.ShippingIncluded = included
}

// TotalValue is Σ(unit price × quantity) plus the cash amount, in the
// reference currency. Display-currency conversion happens at presentation
// time only.
func (o *Offer) TotalValue() float64 {
	total := o.Money
	for _, card := range o.Cards {
		total += card.UnitPrice * float64(card.Quantity)
	}
	return total
}

// BuildCounterOffers prefills both offers from a prior trade: "mine" from the
// items the viewer originally put up, "theirs" from the other party's items,
// preserving each item's quantity and condition. Money and shipping terms
// carry over side-correctly.
func BuildCounterOffers(parent *models.Trade, items []models.TradeItem, cards map[uuid.UUID]models.Card, viewerID uuid.UUID) (mine, theirs *Offer) {
	mine = NewOffer(SideMine)
	theirs = NewOffer(SideTheirs)

	if parent.InitiatorID == viewerID {
		mine.Money, theirs.Money = parent.InitiatorMoney, parent.RecipientMoney
		mine.ShippingIncluded, theirs.ShippingIncluded = parent.InitiatorShipping, parent.RecipientShipping
	} else {
		mine.Money, theirs.Money = parent.RecipientMoney, parent.InitiatorMoney
		mine.ShippingIncluded, theirs.ShippingIncluded = parent.RecipientShipping, parent.InitiatorShipping
	}

	for _, item := range items {
		offer := theirs
		if item.OwnerID == viewerID {
			offer = mine
		}
		card := cards[item.CardID]
		offer.Cards = append(offer.Cards, OfferCard{
			CardID:    item.CardID,
			Name:      card.Name,
			ImageURL:  card.ImageURL,
			UnitPrice: card.MarketPrice,
			Quantity:  item.Quantity,
			Condition: item.Condition,
			Available: item.Quantity,
		})
	}
	return mine, theirs
}
