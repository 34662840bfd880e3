package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipStatus is pending until the addressee accepts.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed request row; an accepted row represents the
// friendship for both users.
type Friendship struct {
	FriendshipID uuid.UUID        `gorm:"column:friendship_id;type:uuid;primaryKey" json:"friendship_id"`
	RequesterID  uuid.UUID        `gorm:"column:requester_id;type:uuid;not null;uniqueIndex:idx_friendship_pair" json:"requester_id"`
	AddresseeID  uuid.UUID        `gorm:"column:addressee_id;type:uuid;not null;uniqueIndex:idx_friendship_pair" json:"addressee_id"`
	Status       FriendshipStatus `gorm:"column:status;not null;default:pending" json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func (Friendship) TableName() string {
	return "Friendships"
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.FriendshipID == uuid.Nil {
		f.FriendshipID = uuid.New()
	}
	return nil
}
