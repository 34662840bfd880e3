package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TradeStatus tracks the lifecycle of a trade proposal.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeDeclined  TradeStatus = "declined"
	TradeCancelled TradeStatus = "cancelled"
	TradeExpired   TradeStatus = "expired"
)

// Trade joins an initiator and a recipient. Money amounts are in the
// reference currency. ParentTradeID links a counter-offer to the trade it
// superseded (which is marked declined at submission time).
type Trade struct {
	TradeID           uuid.UUID      `gorm:"column:trade_id;type:uuid;primaryKey" json:"trade_id"`
	InitiatorID       uuid.UUID      `gorm:"column:initiator_id;type:uuid;not null;index" json:"initiator_id"`
	RecipientID       uuid.UUID      `gorm:"column:recipient_id;type:uuid;not null;index" json:"recipient_id"`
	Status            TradeStatus    `gorm:"column:status;not null;default:pending" json:"status"`
	InitiatorMoney    float64        `gorm:"column:initiator_money;type:decimal(18,2);not null;default:0" json:"initiator_money"`
	RecipientMoney    float64        `gorm:"column:recipient_money;type:decimal(18,2);not null;default:0" json:"recipient_money"`
	InitiatorShipping bool           `gorm:"column:initiator_shipping;not null;default:false" json:"initiator_shipping"`
	RecipientShipping bool           `gorm:"column:recipient_shipping;not null;default:false" json:"recipient_shipping"`
	TradeMethod       string         `gorm:"column:trade_method;not null;default:mail" json:"trade_method"`
	Message           string         `gorm:"column:message" json:"message"`
	ParentTradeID     *uuid.UUID     `gorm:"column:parent_trade_id;type:uuid" json:"parent_trade_id"`
	ExpiresAt         time.Time      `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Trade) TableName() string {
	return "Trades"
}

func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.TradeID == uuid.Nil {
		t.TradeID = uuid.New()
	}
	return nil
}

// TradeItem is one card+quantity+condition entry attributed to one side of a
// trade. OwnerID identifies whose collection the card comes from.
type TradeItem struct {
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;primaryKey" json:"item_id"`
	TradeID   uuid.UUID `gorm:"column:trade_id;type:uuid;not null;index" json:"trade_id"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null" json:"owner_id"`
	CardID    uuid.UUID `gorm:"column:card_id;type:uuid;not null" json:"card_id"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Condition string    `gorm:"column:condition;not null" json:"condition"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TradeItem) TableName() string {
	return "TradeItems"
}

func (i *TradeItem) BeforeCreate(tx *gorm.DB) error {
	if i.ItemID == uuid.Nil {
		i.ItemID = uuid.New()
	}
	return nil
}
