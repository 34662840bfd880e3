package collection

import (
	"time"

	"binder-backend/internal/models"

	"github.com/google/uuid"
)

// AggregateItem is the per-card rollup of one user's variant counts. It is
// derived from CollectionEntry rows and never persisted; Total always equals
// the sum of the six variant counters.
type AggregateItem struct {
	CardID      uuid.UUID              `json:"card_id"`
	Variants    map[models.Variant]int `json:"variants"`
	Total       int                    `json:"total"`
	DateAdded   time.Time              `json:"date_added"`
	LastUpdated time.Time              `json:"last_updated"`
}

// newAggregateItem initializes all six variant counters to zero.
func newAggregateItem(cardID uuid.UUID) *AggregateItem {
	variants := make(map[models.Variant]int, len(models.Variants))
	for _, v := range models.Variants {
		variants[v] = 0
	}
	return &AggregateItem{CardID: cardID, Variants: variants}
}

// Aggregate folds a flat list of ownership rows into one rollup per card.
// Input order is irrelevant: every field is a commutative fold (sum, min
// created, max updated). Unrecognized variant strings count as normal. Cards
// with no rows are absent from the output; a zero aggregate is never emitted.
func Aggregate(rows []models.CollectionEntry) map[uuid.UUID]*AggregateItem {
	out := make(map[uuid.UUID]*AggregateItem)
	for _, row := range rows {
		item, ok := out[row.CardID]
		if !ok {
			item = newAggregateItem(row.CardID)
			item.DateAdded = row.CreatedAt
			item.LastUpdated = row.UpdatedAt
			out[row.CardID] = item
		}
		item.Variants[models.ParseVariant(row.Variant)] += row.Quantity
		item.Total += row.Quantity
		if row.CreatedAt.Before(item.DateAdded) {
			item.DateAdded = row.CreatedAt
		}
		if row.UpdatedAt.After(item.LastUpdated) {
			item.LastUpdated = row.UpdatedAt
		}
	}
	return out
}
