package trade

import (
	"testing"

	"binder-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryCard(available int, price float64) InventoryCard {
	return InventoryCard{
		CardID:    uuid.New(),
		Name:      "Pikachu",
		UnitPrice: price,
		Condition: string(models.ConditionNearMint),
		Available: available,
	}
}

func TestOffer_AddCard(t *testing.T) {
	o := NewOffer(SideMine)
	inv := inventoryCard(3, 1.50)

	o.AddCard(inv)
	require.Len(t, o.Cards, 1)
	assert.Equal(t, 1, o.Cards[0].Quantity)
	assert.Equal(t, inv.Condition, o.Cards[0].Condition)

	o.AddCard(inv)
	o.AddCard(inv)
	require.Len(t, o.Cards, 1)
	assert.Equal(t, 3, o.Cards[0].Quantity)

	// Past availability: silently ignored.
	o.AddCard(inv)
	assert.Equal(t, 3, o.Cards[0].Quantity)
}

func TestOffer_AddCard_NoStock(t *testing.T) {
	o := NewOffer(SideMine)
	o.AddCard(inventoryCard(0, 1.00))
	assert.Empty(t, o.Cards)
}

func TestOffer_RemoveCard(t *testing.T) {
	o := NewOffer(SideMine)
	inv := inventoryCard(5, 2.00)
	o.AddCard(inv)
	o.AddCard(inv)

	o.RemoveCard(inv.CardID)
	assert.Empty(t, o.Cards)

	// Removing again is harmless.
	o.RemoveCard(inv.CardID)
	assert.Empty(t, o.Cards)
}

// Quantity never exceeds availability and never drops below 1.
func TestOffer_ChangeQuantity_Clamps(t *testing.T) {
	o := NewOffer(SideMine)
	inv := inventoryCard(4, 1.00)
	o.AddCard(inv)

	o.ChangeQuantity(inv.CardID, +10)
	assert.Equal(t, 4, o.Cards[0].Quantity)

	o.ChangeQuantity(inv.CardID, -10)
	assert.Equal(t, 1, o.Cards[0].Quantity)

	o.ChangeQuantity(inv.CardID, +2)
	assert.Equal(t, 3, o.Cards[0].Quantity)

	// Unknown card: no-op.
	o.ChangeQuantity(uuid.New(), +1)
	assert.Equal(t, 3, o.Cards[0].Quantity)
}

func TestOffer_SetMoney(t *testing.T) {
	o := NewOffer(SideMine)
	o.SetMoney(12.50)
	assert.Equal(t, 12.50, o.Money)

	o.SetMoney(-5)
	assert.Equal(t, 0.0, o.Money)
}

// Empty offer: totalValue is exactly 0.
func TestOffer_TotalValue_Empty(t *testing.T) {
	o := NewOffer(SideMine)
	assert.Equal(t, 0.0, o.TotalValue())
}

// Cards priced 5.00 and 3.50 at quantities 2 and 1 plus money 10.00 → 23.50.
func TestOffer_TotalValue_Scenario(t *testing.T) {
	o := NewOffer(SideMine)
	a := inventoryCard(5, 5.00)
	b := inventoryCard(5, 3.50)

	o.AddCard(a)
	o.ChangeQuantity(a.CardID, +1)
	o.AddCard(b)
	o.SetMoney(10.00)

	assert.InDelta(t, 23.50, o.TotalValue(), 1e-9)
}

// Counter-offer prefill: "mine" holds the viewer's original items, "theirs"
// the other party's, preserving quantity and condition; money and shipping
// carry over side-correctly.
func TestBuildCounterOffers(t *testing.T) {
	me, them := uuid.New(), uuid.New()
	cardA, cardB := uuid.New(), uuid.New()

	parent := &models.Trade{
		InitiatorID:       them,
		RecipientID:       me,
		InitiatorMoney:    5.00,
		RecipientMoney:    2.00,
		InitiatorShipping: true,
	}
	items := []models.TradeItem{
		{OwnerID: them, CardID: cardA, Quantity: 2, Condition: "near_mint"},
		{OwnerID: me, CardID: cardB, Quantity: 1, Condition: "lightly_played"},
	}
	cards := map[uuid.UUID]models.Card{
		cardA: {CardID: cardA, Name: "Blastoise", MarketPrice: 80},
		cardB: {CardID: cardB, Name: "Venusaur", MarketPrice: 60},
	}

	mine, theirs := BuildCounterOffers(parent, items, cards, me)

	require.Len(t, mine.Cards, 1)
	assert.Equal(t, cardB, mine.Cards[0].CardID)
	assert.Equal(t, 1, mine.Cards[0].Quantity)
	assert.Equal(t, "lightly_played", mine.Cards[0].Condition)
	assert.Equal(t, 2.00, mine.Money)
	assert.False(t, mine.ShippingIncluded)

	require.Len(t, theirs.Cards, 1)
	assert.Equal(t, cardA, theirs.Cards[0].CardID)
	assert.Equal(t, 2, theirs.Cards[0].Quantity)
	assert.Equal(t, "near_mint", theirs.Cards[0].Condition)
	assert.Equal(t, "Blastoise", theirs.Cards[0].Name)
	assert.Equal(t, 5.00, theirs.Money)
	assert.True(t, theirs.ShippingIncluded)
}
