package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardSet is one released expansion (e.g. "Base Set", "Jungle").
type CardSet struct {
	SetID       uuid.UUID `gorm:"column:set_id;type:uuid;primaryKey" json:"set_id"`
	Code        string    `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Series      string    `gorm:"column:series" json:"series"`
	ReleaseDate *time.Time `gorm:"column:release_date" json:"release_date"`
	TotalCards  int       `gorm:"column:total_cards;not null;default:0" json:"total_cards"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (CardSet) TableName() string {
	return "CardSets"
}

func (s *CardSet) BeforeCreate(tx *gorm.DB) error {
	if s.SetID == uuid.Nil {
		s.SetID = uuid.New()
	}
	return nil
}

// Card is one printing within a set. MarketPrice is in the reference currency.
type Card struct {
	CardID      uuid.UUID `gorm:"column:card_id;type:uuid;primaryKey" json:"card_id"`
	SetID       uuid.UUID `gorm:"column:set_id;type:uuid;not null;index" json:"set_id"`
	Number      string    `gorm:"column:number;not null" json:"number"`
	Name        string    `gorm:"column:name;not null;index" json:"name"`
	Rarity      string    `gorm:"column:rarity" json:"rarity"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	MarketPrice float64   `gorm:"column:market_price;type:decimal(18,2);not null;default:0" json:"market_price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Card) TableName() string {
	return "Cards"
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.CardID == uuid.Nil {
		c.CardID = uuid.New()
	}
	return nil
}
