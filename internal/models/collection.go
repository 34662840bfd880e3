package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variant is a printing style tracked as a separate ownership count.
type Variant string

const (
	VariantNormal       Variant = "normal"
	VariantHolo         Variant = "holo"
	VariantReverseHolo  Variant = "reverse_holo"
	VariantPokeball     Variant = "pokeball_pattern"
	VariantMasterball   Variant = "masterball_pattern"
	VariantFirstEdition Variant = "first_edition"
)

// Variants lists all variant kinds in canonical order.
var Variants = []Variant{
	VariantNormal,
	VariantHolo,
	VariantReverseHolo,
	VariantPokeball,
	VariantMasterball,
	VariantFirstEdition,
}

// ParseVariant maps a stored variant string to its kind. Unrecognized or
// legacy values count as normal.
func ParseVariant(s string) Variant {
	switch Variant(s) {
	case VariantHolo, VariantReverseHolo, VariantPokeball, VariantMasterball, VariantFirstEdition:
		return Variant(s)
	default:
		return VariantNormal
	}
}

// Condition grades a physical card.
type Condition string

const (
	ConditionMint             Condition = "mint"
	ConditionNearMint         Condition = "near_mint"
	ConditionLightlyPlayed    Condition = "lightly_played"
	ConditionModeratelyPlayed Condition = "moderately_played"
	ConditionHeavilyPlayed    Condition = "heavily_played"
	ConditionDamaged          Condition = "damaged"
)

// CollectionEntry is one user's holding of one card in one variant/condition.
// Rows never persist at quantity 0: the row is deleted when the count reaches
// zero and recreated on the next add.
type CollectionEntry struct {
	EntryID   uuid.UUID `gorm:"column:entry_id;type:uuid;primaryKey" json:"entry_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_collection_key" json:"user_id"`
	CardID    uuid.UUID `gorm:"column:card_id;type:uuid;not null;uniqueIndex:idx_collection_key" json:"card_id"`
	Variant   string    `gorm:"column:variant;not null;uniqueIndex:idx_collection_key" json:"variant"`
	Condition string    `gorm:"column:condition;not null;uniqueIndex:idx_collection_key" json:"condition"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CollectionEntry) TableName() string {
	return "CollectionEntries"
}

func (e *CollectionEntry) BeforeCreate(tx *gorm.DB) error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	return nil
}
