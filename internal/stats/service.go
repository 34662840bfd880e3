package stats

import (
	"context"

	"binder-backend/internal/currency"
	"binder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB        *gorm.DB
	Converter *currency.Converter
}

// SetCompletion is one set's owned-vs-total progress.
type SetCompletion struct {
	SetCode    string  `json:"set_code"`
	SetName    string  `json:"set_name"`
	Owned      int     `json:"owned"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// UserStats is the full statistics view for one user. CollectionValue is in
// the reference currency; CollectionValueDisplay is formatted in the user's
// preferred currency.
type UserStats struct {
	TotalCards             int                    `json:"total_cards"`
	UniqueCards            int                    `json:"unique_cards"`
	VariantTotals          map[models.Variant]int `json:"variant_totals"`
	CollectionValue        float64                `json:"collection_value"`
	CollectionValueDisplay string                 `json:"collection_value_display"`
	WishlistSize           int                    `json:"wishlist_size"`
	SetCompletion          []SetCompletion        `json:"set_completion"`
	TradeCounts            map[string]int         `json:"trade_counts"`
}

// ViewStats computes the user's collection and trading statistics.
func (s *Service) ViewStats(ctx context.Context, userID uuid.UUID, preferredCurrency, locale string) (*UserStats, error) {
	db := s.DB.WithContext(ctx)

	var rows []models.CollectionEntry
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	stats := &UserStats{
		VariantTotals: make(map[models.Variant]int, len(models.Variants)),
		TradeCounts:   make(map[string]int),
	}
	for _, v := range models.Variants {
		stats.VariantTotals[v] = 0
	}

	ownedQty := make(map[uuid.UUID]int)
	for _, row := range rows {
		stats.TotalCards += row.Quantity
		stats.VariantTotals[models.ParseVariant(row.Variant)] += row.Quantity
		ownedQty[row.CardID] += row.Quantity
	}
	stats.UniqueCards = len(ownedQty)

	if len(ownedQty) > 0 {
		ids := make([]uuid.UUID, 0, len(ownedQty))
		for id := range ownedQty {
			ids = append(ids, id)
		}
		var cards []models.Card
		if err := db.Where("card_id IN ?", ids).Find(&cards).Error; err != nil {
			return nil, err
		}

		ownedPerSet := make(map[uuid.UUID]int)
		for _, card := range cards {
			stats.CollectionValue += card.MarketPrice * float64(ownedQty[card.CardID])
			ownedPerSet[card.SetID]++
		}

		setIDs := make([]uuid.UUID, 0, len(ownedPerSet))
		for id := range ownedPerSet {
			setIDs = append(setIDs, id)
		}
		var sets []models.CardSet
		if err := db.Where("set_id IN ?", setIDs).Order("release_date DESC").Find(&sets).Error; err != nil {
			return nil, err
		}
		for _, set := range sets {
			owned := ownedPerSet[set.SetID]
			pct := 0.0
			if set.TotalCards > 0 {
				pct = float64(owned) / float64(set.TotalCards) * 100
			}
			stats.SetCompletion = append(stats.SetCompletion, SetCompletion{
				SetCode:    set.Code,
				SetName:    set.Name,
				Owned:      owned,
				Total:      set.TotalCards,
				Percentage: pct,
			})
		}
	}

	if s.Converter != nil {
		stats.CollectionValueDisplay = s.Converter.Format(stats.CollectionValue, preferredCurrency, locale)
	}

	var wishlistCount int64
	if err := db.Model(&models.WishlistItem{}).Where("user_id = ?", userID).Count(&wishlistCount).Error; err != nil {
		return nil, err
	}
	stats.WishlistSize = int(wishlistCount)

	var trades []models.Trade
	if err := db.Where("initiator_id = ? OR recipient_id = ?", userID, userID).Find(&trades).Error; err != nil {
		return nil, err
	}
	for _, t := range trades {
		stats.TradeCounts[string(t.Status)]++
	}

	return stats, nil
}
