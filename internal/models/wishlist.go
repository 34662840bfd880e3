package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem marks a card a user wants. Removed automatically (best-effort)
// when the user adds the card to their collection.
type WishlistItem struct {
	WishlistID uuid.UUID `gorm:"column:wishlist_id;type:uuid;primaryKey" json:"wishlist_id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_wishlist_key" json:"user_id"`
	CardID     uuid.UUID `gorm:"column:card_id;type:uuid;not null;uniqueIndex:idx_wishlist_key" json:"card_id"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (WishlistItem) TableName() string {
	return "WishlistItems"
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.WishlistID == uuid.Nil {
		w.WishlistID = uuid.New()
	}
	return nil
}
